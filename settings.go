package main

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"pipe-tools/models"
	"sort"
)

const (
	SettingProjectRoot   = "project_root"
	SettingRenderRoot    = "render_root"
	SettingRenderOutput  = "render_output"
	SettingPreviewOutput = "preview_output"
	SettingDBHost        = "db_host"
	SettingDBName        = "db_name"
	SettingDBUser        = "db_user"
	SettingDBPassword    = "db_password"
)

var settingDefaults = map[string]string{
	SettingProjectRoot:   "",
	SettingRenderRoot:    "",
	SettingRenderOutput:  "",
	SettingPreviewOutput: "",
	SettingDBHost:        "localhost",
	SettingDBName:        "pipeline.fdb",
	SettingDBUser:        "SYSDBA",
	SettingDBPassword:    "",
}

var secretSettings = map[string]bool{
	SettingDBPassword: true,
}

func getSetting(db *gorm.DB, key string) (string, error) {
	defaultValue, known := settingDefaults[key]

	if !known {
		return "", fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	var setting models.Setting
	result := db.Where("setting_key = ?", key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return defaultValue, nil
	}

	if result.Error != nil {
		return "", result.Error
	}

	return setting.SettingValue, nil
}

func (ctx *Context) GetSetting(key string) (string, error) {
	return getSetting(ctx.DB, key)
}

func (ctx *Context) SetSetting(key, value string) error {
	if err := RequireAdmin(ctx.Session); err != nil {
		return err
	}

	if _, known := settingDefaults[key]; !known {
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	return ctx.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&models.Setting{SettingKey: key, SettingValue: value}).Error
}

type SettingEntry struct {
	Key    string
	Value  string
	Secret bool
}

// ListSettings returns every known key, falling back to defaults, sorted by key.
func (ctx *Context) ListSettings() ([]SettingEntry, error) {
	var stored []models.Setting

	if err := ctx.DB.Find(&stored).Error; err != nil {
		return nil, err
	}

	values := make(map[string]string, len(settingDefaults))

	for key, value := range settingDefaults {
		values[key] = value
	}

	for _, setting := range stored {
		if _, known := settingDefaults[setting.SettingKey]; known {
			values[setting.SettingKey] = setting.SettingValue
		}
	}

	entries := make([]SettingEntry, 0, len(values))

	for key, value := range values {
		entries = append(entries, SettingEntry{Key: key, Value: value, Secret: secretSettings[key]})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

// renderOutput prefers render_output and falls back to render_root.
func renderOutput(db *gorm.DB) (string, error) {
	value, err := getSetting(db, SettingRenderOutput)

	if err != nil || value != "" {
		return value, err
	}

	return getSetting(db, SettingRenderRoot)
}
