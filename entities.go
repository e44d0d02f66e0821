package main

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"pipe-tools/models"
	"pipe-tools/utils"
	"strings"
)

func notFound(result *gorm.DB, what string) error {
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}

	return result.Error
}

func (ctx *Context) CreateProject(name, path, description string) (*models.Project, error) {
	key, err := nameKey(name)

	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        strings.TrimSpace(name),
		NameKey:     key,
		Path:        path,
		Description: description,
	}

	created, err := getOrCreate(ctx.DB, map[string]any{"name_key": key}, project)

	if err != nil {
		return nil, err
	}

	if !created {
		return nil, fmt.Errorf("project %q: %w", name, ErrAlreadyExists)
	}

	return project, nil
}

func (ctx *Context) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	result := ctx.DB.Order("name").Find(&projects)

	return projects, result.Error
}

func (ctx *Context) FindProject(name string) (*models.Project, error) {
	var project models.Project
	result := ctx.DB.Where("name_key = ?", utils.NormalizeName(name)).First(&project)

	if result.Error != nil {
		return nil, notFound(result, fmt.Sprintf("project %q", name))
	}

	return &project, nil
}

// DeleteProject removes the project with its sequences, shots and every version under them.
func (ctx *Context) DeleteProject(name string) error {
	if err := RequireAdmin(ctx.Session); err != nil {
		return err
	}

	project, err := ctx.FindProject(name)

	if err != nil {
		return err
	}

	return ctx.DB.Transaction(func(tx *gorm.DB) error {
		var sequenceIDs []uint

		if err := tx.Model(&models.Sequence{}).Where("project_id = ?", project.ID).Pluck("id", &sequenceIDs).Error; err != nil {
			return err
		}

		var shotIDs []uint

		if err := tx.Model(&models.Shot{}).Where("sequence_id IN ?", sequenceIDs).Pluck("id", &shotIDs).Error; err != nil {
			return err
		}

		result := tx.Where("project_id = ?", project.ID).
			Or("sequence_id IN ?", sequenceIDs).
			Or("shot_id IN ?", shotIDs).
			Delete(&models.Version{})

		if result.Error != nil {
			return result.Error
		}

		if err := tx.Where("sequence_id IN ?", sequenceIDs).Delete(&models.Shot{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Sequence{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
}

func (ctx *Context) CreateSequence(projectName, name, description string) (*models.Sequence, error) {
	project, err := ctx.FindProject(projectName)

	if err != nil {
		return nil, err
	}

	key, err := nameKey(name)

	if err != nil {
		return nil, err
	}

	sequence := &models.Sequence{
		ProjectID:   project.ID,
		Name:        strings.TrimSpace(name),
		NameKey:     key,
		Description: description,
	}

	created, err := getOrCreate(ctx.DB, map[string]any{"project_id": project.ID, "name_key": key}, sequence)

	if err != nil {
		return nil, err
	}

	if !created {
		return nil, fmt.Errorf("sequence %q in %q: %w", name, projectName, ErrAlreadyExists)
	}

	return sequence, nil
}

func (ctx *Context) ListSequences(projectName string) ([]models.Sequence, error) {
	project, err := ctx.FindProject(projectName)

	if err != nil {
		return nil, err
	}

	var sequences []models.Sequence
	result := ctx.DB.Where("project_id = ?", project.ID).Order("name").Find(&sequences)

	return sequences, result.Error
}

func (ctx *Context) FindSequence(projectName, name string) (*models.Sequence, error) {
	project, err := ctx.FindProject(projectName)

	if err != nil {
		return nil, err
	}

	var sequence models.Sequence
	result := ctx.DB.Where("project_id = ? AND name_key = ?", project.ID, utils.NormalizeName(name)).First(&sequence)

	if result.Error != nil {
		return nil, notFound(result, fmt.Sprintf("sequence %q in %q", name, projectName))
	}

	return &sequence, nil
}

func (ctx *Context) CreateShot(projectName, sequenceName, name, description string) (*models.Shot, error) {
	sequence, err := ctx.FindSequence(projectName, sequenceName)

	if err != nil {
		return nil, err
	}

	key, err := nameKey(name)

	if err != nil {
		return nil, err
	}

	shot := &models.Shot{
		SequenceID:  sequence.ID,
		Name:        strings.TrimSpace(name),
		NameKey:     key,
		Status:      models.ShotStatusPending,
		Description: description,
	}

	created, err := getOrCreate(ctx.DB, map[string]any{"sequence_id": sequence.ID, "name_key": key}, shot)

	if err != nil {
		return nil, err
	}

	if !created {
		return nil, fmt.Errorf("shot %q in %q: %w", name, sequenceName, ErrAlreadyExists)
	}

	return shot, nil
}

func (ctx *Context) ListShots(projectName, sequenceName string) ([]models.Shot, error) {
	sequence, err := ctx.FindSequence(projectName, sequenceName)

	if err != nil {
		return nil, err
	}

	var shots []models.Shot
	result := ctx.DB.Where("sequence_id = ?", sequence.ID).Order("name").Find(&shots)

	return shots, result.Error
}

func (ctx *Context) FindShot(projectName, sequenceName, name string) (*models.Shot, error) {
	sequence, err := ctx.FindSequence(projectName, sequenceName)

	if err != nil {
		return nil, err
	}

	var shot models.Shot
	result := ctx.DB.Where("sequence_id = ? AND name_key = ?", sequence.ID, utils.NormalizeName(name)).First(&shot)

	if result.Error != nil {
		return nil, notFound(result, fmt.Sprintf("shot %q in %q", name, sequenceName))
	}

	return &shot, nil
}

func (ctx *Context) SetShotStatus(projectName, sequenceName, name, status string) error {
	if !utils.IsInArray(status, models.ShotStatuses) {
		return fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidStatus, status, strings.Join(models.ShotStatuses, ", "))
	}

	shot, err := ctx.FindShot(projectName, sequenceName, name)

	if err != nil {
		return err
	}

	return ctx.DB.Model(shot).Update("status", status).Error
}

// ResolveParent picks the deepest level named: a shot when shotName is set, then a sequence, then the project.
func (ctx *Context) ResolveParent(projectName, sequenceName, shotName string) (Parent, error) {
	switch {
	case shotName != "":
		shot, err := ctx.FindShot(projectName, sequenceName, shotName)

		if err != nil {
			return Parent{}, err
		}

		return Parent{Kind: ParentShot, ID: shot.ID}, nil

	case sequenceName != "":
		sequence, err := ctx.FindSequence(projectName, sequenceName)

		if err != nil {
			return Parent{}, err
		}

		return Parent{Kind: ParentSequence, ID: sequence.ID}, nil
	}

	project, err := ctx.FindProject(projectName)

	if err != nil {
		return Parent{}, err
	}

	return Parent{Kind: ParentProject, ID: project.ID}, nil
}
