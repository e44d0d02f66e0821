package main

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"pipe-tools/models"
	"pipe-tools/utils"
	"strings"
)

type ParentKind int

const (
	ParentProject ParentKind = iota
	ParentSequence
	ParentShot
)

type parentKindInfo struct {
	versionType string
	column      string
}

// Foreign key columns come only from this table.
var parentKinds = map[ParentKind]parentKindInfo{
	ParentProject:  {versionType: models.VersionTypeProject, column: "project_id"},
	ParentSequence: {versionType: models.VersionTypeSequence, column: "sequence_id"},
	ParentShot:     {versionType: models.VersionTypeShot, column: "shot_id"},
}

func (kind ParentKind) String() string {
	if info, ok := parentKinds[kind]; ok {
		return info.versionType
	}

	return "unknown"
}

func ParseParentKind(s string) (ParentKind, error) {
	for kind, info := range parentKinds {
		if info.versionType == strings.ToLower(s) {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownParentKind, s)
}

// Parent identifies the project, sequence or shot a version hangs off.
type Parent struct {
	Kind ParentKind
	ID   uint
}

func (parent Parent) String() string {
	return fmt.Sprintf("%s #%d", parent.Kind, parent.ID)
}

func (parent Parent) versions(tx *gorm.DB) (*gorm.DB, error) {
	info, ok := parentKinds[parent.Kind]

	if !ok {
		return nil, ErrUnknownParentKind
	}

	return tx.Model(&models.Version{}).Where(map[string]any{
		"version_type": info.versionType,
		info.column:    parent.ID,
	}), nil
}

func (parent Parent) assign(version *models.Version) error {
	info, ok := parentKinds[parent.Kind]

	if !ok {
		return ErrUnknownParentKind
	}

	id := parent.ID
	version.VersionType = info.versionType
	version.ProjectID, version.SequenceID, version.ShotID = nil, nil, nil

	switch parent.Kind {
	case ParentProject:
		version.ProjectID = &id
	case ParentSequence:
		version.SequenceID = &id
	case ParentShot:
		version.ShotID = &id
	}

	return nil
}

func parentOf(version *models.Version) (Parent, error) {
	switch {
	case version.VersionType == models.VersionTypeProject && version.ProjectID != nil:
		return Parent{Kind: ParentProject, ID: *version.ProjectID}, nil
	case version.VersionType == models.VersionTypeSequence && version.SequenceID != nil:
		return Parent{Kind: ParentSequence, ID: *version.SequenceID}, nil
	case version.VersionType == models.VersionTypeShot && version.ShotID != nil:
		return Parent{Kind: ParentShot, ID: *version.ShotID}, nil
	}

	return Parent{}, ErrUnknownParentKind
}

func parentExists(tx *gorm.DB, parent Parent) error {
	var model any

	switch parent.Kind {
	case ParentProject:
		model = &models.Project{}
	case ParentSequence:
		model = &models.Sequence{}
	case ParentShot:
		model = &models.Shot{}
	default:
		return ErrUnknownParentKind
	}

	var count int64
	result := tx.Model(model).Where("id = ?", parent.ID).Count(&count)

	if result.Error != nil {
		return result.Error
	}

	if count == 0 {
		return fmt.Errorf("%s: %w", parent, ErrNotFound)
	}

	return nil
}

func maxVersionNumber(tx *gorm.DB, parent Parent) (uint, error) {
	query, err := parent.versions(tx)

	if err != nil {
		return 0, err
	}

	var highest int64
	err = query.Select("COALESCE(MAX(version_number), 0)").Row().Scan(&highest)

	if err != nil {
		return 0, err
	}

	return uint(highest), nil
}

// NextVersionNumber is the highest existing number plus one. Gaps are not filled.
func (ctx *Context) NextVersionNumber(parent Parent) (uint, error) {
	highest, err := maxVersionNumber(ctx.DB, parent)

	if err != nil {
		return 0, err
	}

	return highest + 1, nil
}

// insertVersion must run inside a transaction. The highest number per parent is the latest one.
func insertVersion(tx *gorm.DB, parent Parent, version *models.Version) error {
	if version.VersionNumber == 0 {
		return ErrInvalidVersionNumber
	}

	if err := parent.assign(version); err != nil {
		return err
	}

	query, err := parent.versions(tx)

	if err != nil {
		return err
	}

	var duplicates int64
	result := query.Where("version_number = ?", version.VersionNumber).Count(&duplicates)

	if result.Error != nil {
		return result.Error
	}

	if duplicates > 0 {
		return fmt.Errorf("%s %s: %w", parent, FormatVersionFolder(version.VersionNumber), ErrVersionExists)
	}

	highest, err := maxVersionNumber(tx, parent)

	if err != nil {
		return err
	}

	version.IsLatest = version.VersionNumber > highest

	if version.IsLatest {
		query, err = parent.versions(tx)

		if err != nil {
			return err
		}

		result = query.Where("is_latest = ?", true).Update("is_latest", false)

		if result.Error != nil {
			return result.Error
		}
	}

	return tx.Create(version).Error
}

type NewVersion struct {
	// Zero means the next free number
	VersionNumber uint
	WorkerID      uint
	FilePath      string
	PreviewPath   string
	RenderPath    string
	Comment       string
}

func (ctx *Context) CreateVersion(parent Parent, input NewVersion) (*models.Version, error) {
	version := &models.Version{
		VersionNumber: input.VersionNumber,
		WorkerID:      input.WorkerID,
		FilePath:      input.FilePath,
		PreviewPath:   input.PreviewPath,
		RenderPath:    input.RenderPath,
		Comment:       input.Comment,
		Status:        models.ShotStatusPending,
	}

	err := ctx.DB.Transaction(func(tx *gorm.DB) error {
		if err := parentExists(tx, parent); err != nil {
			return err
		}

		result := tx.Model(&models.Worker{}).Where("id = ?", input.WorkerID).First(&models.Worker{})

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("worker #%d: %w", input.WorkerID, ErrNotFound)
		}

		if result.Error != nil {
			return result.Error
		}

		if version.VersionNumber == 0 {
			highest, err := maxVersionNumber(tx, parent)

			if err != nil {
				return err
			}

			version.VersionNumber = highest + 1
		}

		if version.RenderPath == "" || version.PreviewPath == "" {
			renderPath, previewPath, err := defaultVersionPaths(tx, parent, version.VersionNumber)

			if err != nil {
				return err
			}

			if version.RenderPath == "" {
				version.RenderPath = renderPath
			}

			if version.PreviewPath == "" {
				version.PreviewPath = previewPath
			}
		}

		return insertVersion(tx, parent, version)
	})

	if err != nil {
		return nil, err
	}

	return version, nil
}

func (ctx *Context) ListVersions(parent Parent) ([]models.Version, error) {
	query, err := parent.versions(ctx.DB)

	if err != nil {
		return nil, err
	}

	var versions []models.Version
	result := query.Preload("Worker").Order("version_number").Find(&versions)

	return versions, result.Error
}

func (ctx *Context) LatestVersion(parent Parent) (*models.Version, error) {
	query, err := parent.versions(ctx.DB)

	if err != nil {
		return nil, err
	}

	var version models.Version
	result := query.Where("is_latest = ?", true).First(&version)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("latest version of %s: %w", parent, ErrNotFound)
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &version, nil
}

// DeleteVersion hands the latest flag to the highest remaining number when the latest is removed.
func (ctx *Context) DeleteVersion(id uint) error {
	return ctx.DB.Transaction(func(tx *gorm.DB) error {
		var version models.Version
		result := tx.First(&version, id)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("version #%d: %w", id, ErrNotFound)
		}

		if result.Error != nil {
			return result.Error
		}

		if err := tx.Delete(&version).Error; err != nil {
			return err
		}

		if !version.IsLatest {
			return nil
		}

		parent, err := parentOf(&version)

		if err != nil {
			return err
		}

		highest, err := maxVersionNumber(tx, parent)

		if err != nil || highest == 0 {
			return err
		}

		query, err := parent.versions(tx)

		if err != nil {
			return err
		}

		return query.Where("version_number = ?", highest).Update("is_latest", true).Error
	})
}

func (ctx *Context) SetVersionStatus(id uint, status string) error {
	if !utils.IsInArray(status, models.ShotStatuses) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	result := ctx.DB.Model(&models.Version{}).Where("id = ?", id).Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("version #%d: %w", id, ErrNotFound)
	}

	return nil
}
