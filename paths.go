package main

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"path/filepath"
	"pipe-tools/models"
)

// parentNames returns the folder names from the project down to the parent.
func parentNames(tx *gorm.DB, parent Parent) ([]string, error) {
	var err error

	switch parent.Kind {
	case ParentProject:
		var project models.Project
		if err = tx.First(&project, parent.ID).Error; err == nil {
			return []string{project.Name}, nil
		}
	case ParentSequence:
		var sequence models.Sequence
		if err = tx.Preload("Project").First(&sequence, parent.ID).Error; err == nil {
			return []string{sequence.Project.Name, sequence.Name}, nil
		}
	case ParentShot:
		var shot models.Shot
		if err = tx.Preload("Sequence.Project").First(&shot, parent.ID).Error; err == nil {
			return []string{shot.Sequence.Project.Name, shot.Sequence.Name, shot.Name}, nil
		}
	default:
		return nil, ErrUnknownParentKind
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", parent, ErrNotFound)
	}

	return nil, err
}

// defaultVersionPaths builds <root>/<project>[/<sequence>[/<shot>]]/vNNN for renders and previews.
// A root that is not configured gives an empty path.
func defaultVersionPaths(tx *gorm.DB, parent Parent, number uint) (string, string, error) {
	renderRoot, err := renderOutput(tx)

	if err != nil {
		return "", "", err
	}

	previewRoot, err := getSetting(tx, SettingPreviewOutput)

	if err != nil {
		return "", "", err
	}

	if renderRoot == "" && previewRoot == "" {
		return "", "", nil
	}

	names, err := parentNames(tx, parent)

	if err != nil {
		return "", "", err
	}

	join := func(root string) string {
		if root == "" {
			return ""
		}

		parts := append([]string{root}, names...)
		return filepath.Join(append(parts, FormatVersionFolder(number))...)
	}

	return join(renderRoot), join(previewRoot), nil
}
