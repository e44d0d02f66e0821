package main

import (
	"gorm.io/gorm"
	"path/filepath"
	"pipe-tools/config"
	"pipe-tools/models"
)

const AutoImportComment = "Auto-imported from filesystem"

// importVersionFolder registers a vNNN folder as a version of parent. It reports false when the
// folder was skipped, either because its name is not a version or because the import mode says
// the parent already has it.
func (s *synchronizer) importVersionFolder(parent Parent, folderPath string) (bool, error) {
	name := filepath.Base(folderPath)
	number, ok := ParseVersionFolder(name)

	if !ok {
		s.warn("Skipping \"%s\": \"%s\" is not a version folder name (expected vNNN)", folderPath, name)
		return false, nil
	}

	if number == 0 {
		s.warn("Skipping \"%s\": version numbers start at %s", folderPath, FormatVersionFolder(1))
		return false, nil
	}

	imported := false

	err := s.ctx.DB.Transaction(func(tx *gorm.DB) error {
		query, err := parent.versions(tx)

		if err != nil {
			return err
		}

		// first_only treats any existing version as this one having been imported already
		if s.importMode == config.VersionImportByNumber {
			query = query.Where("version_number = ?", number)
		}

		var existing int64

		if err := query.Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			return nil
		}

		version := &models.Version{
			VersionNumber: number,
			WorkerID:      s.systemWorker.ID,
			FilePath:      folderPath,
			Comment:       AutoImportComment,
			Status:        models.ShotStatusPending,
		}

		if err := insertVersion(tx, parent, version); err != nil {
			return err
		}

		imported = true
		return nil
	})

	if err != nil {
		return false, err
	}

	if imported {
		s.report.VersionsImported++
	} else {
		s.report.VersionsSkipped++
	}

	return imported, nil
}
