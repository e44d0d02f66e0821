package main

import (
	"errors"
	"gorm.io/gorm"
	"pipe-tools/models"
	"pipe-tools/utils"
	"strings"
)

// getOrCreate loads the row matching scope into record, or inserts record when there is none.
// The insert is committed straight away.
func getOrCreate[T any](db *gorm.DB, scope map[string]any, record *T) (bool, error) {
	var existing T
	result := db.Where(scope).First(&existing)

	if result.Error == nil {
		*record = existing
		return false, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}

	if err := db.Create(record).Error; err != nil {
		return false, err
	}

	return true, nil
}

func nameKey(name string) (string, error) {
	key := utils.NormalizeName(name)

	if key == "" {
		return "", ErrEmptyName
	}

	return key, nil
}

func getOrCreateProject(db *gorm.DB, name, path string) (*models.Project, bool, error) {
	key, err := nameKey(name)

	if err != nil {
		return nil, false, err
	}

	project := &models.Project{
		Name:    strings.TrimSpace(name),
		NameKey: key,
		Path:    path,
	}

	created, err := getOrCreate(db, map[string]any{"name_key": key}, project)

	return project, created, err
}

func getOrCreateSequence(db *gorm.DB, projectID uint, name string) (*models.Sequence, bool, error) {
	key, err := nameKey(name)

	if err != nil {
		return nil, false, err
	}

	sequence := &models.Sequence{
		ProjectID: projectID,
		Name:      strings.TrimSpace(name),
		NameKey:   key,
	}

	created, err := getOrCreate(db, map[string]any{"project_id": projectID, "name_key": key}, sequence)

	return sequence, created, err
}

func getOrCreateShot(db *gorm.DB, sequenceID uint, name string) (*models.Shot, bool, error) {
	key, err := nameKey(name)

	if err != nil {
		return nil, false, err
	}

	shot := &models.Shot{
		SequenceID: sequenceID,
		Name:       strings.TrimSpace(name),
		NameKey:    key,
		Status:     models.ShotStatusPending,
	}

	created, err := getOrCreate(db, map[string]any{"sequence_id": sequenceID, "name_key": key}, shot)

	return shot, created, err
}
