package config

import (
	"errors"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"path"
	"time"
)

const (
	VersionImportFirstOnly = "first_only"
	VersionImportByNumber  = "by_number"
)

var ErrInvalidVersionImportMode = errors.New("version_import_mode must be \"first_only\" or \"by_number\"")

type yamlConfig struct {
	IsDebug                     bool     `yaml:"debug"`
	LogFilePath                 string   `yaml:"log_file_path"`
	DBPath                      string   `yaml:"db_path"`
	MaxConcurrentFileOperations int64    `yaml:"max_concurrent_file_operations"`
	CopyChunkSize               int      `yaml:"copy_chunk_size"`
	CopyTimeoutSeconds          int      `yaml:"copy_timeout_seconds"`
	RetryAttempts               int      `yaml:"retry_attempts"`
	RetryBaseDelayMs            int      `yaml:"retry_base_delay_ms"`
	VersionImportMode           string   `yaml:"version_import_mode"`
	FolderNamesToIgnore         []string `yaml:"folder_names_to_ignore"`
	WatchDebounceMs             int      `yaml:"watch_debounce_ms"`
}

type Config struct {
	IsDebug                     bool
	LogFilePath                 string
	DBPath                      string
	MaxConcurrentFileOperations int64
	CopyChunkSize               int
	CopyTimeout                 time.Duration
	RetryAttempts               int
	RetryBaseDelay              time.Duration
	VersionImportMode           string
	FolderNamesToIgnore         []string
	WatchDebounce               time.Duration
}

func Load(defaultConfigData []byte) (*Config, error) {
	configFile := "config.yaml"
	_, err := os.Stat(configFile)

	if err != nil {
		log.Print("No config file found. Creating a new config file...")
		err := os.WriteFile(configFile, defaultConfigData, 0600)

		if err != nil {
			return nil, err
		}
	}

	return parseConfigFile(configFile)
}

func parseConfigFile(configFilePath string) (*Config, error) {
	yamlFile, err := os.ReadFile(path.Clean(configFilePath))

	if err != nil {
		return nil, err
	}

	return Parse(yamlFile)
}

// Parse fills in defaults for anything the file leaves out.
func Parse(data []byte) (*Config, error) {
	config := &yamlConfig{}

	err := yaml.Unmarshal(data, config)

	if err != nil {
		return nil, err
	}

	if config.VersionImportMode == "" {
		config.VersionImportMode = VersionImportFirstOnly
	}

	if config.VersionImportMode != VersionImportFirstOnly && config.VersionImportMode != VersionImportByNumber {
		return nil, ErrInvalidVersionImportMode
	}

	if config.MaxConcurrentFileOperations < 1 {
		config.MaxConcurrentFileOperations = 4
	}

	if config.CopyChunkSize < 1 {
		config.CopyChunkSize = 1024 * 1024
	}

	if config.CopyTimeoutSeconds < 1 {
		config.CopyTimeoutSeconds = 300
	}

	if config.RetryAttempts < 1 {
		config.RetryAttempts = 3
	}

	if config.RetryBaseDelayMs < 1 {
		config.RetryBaseDelayMs = 500
	}

	if config.WatchDebounceMs < 1 {
		config.WatchDebounceMs = 2000
	}

	return &Config{
		IsDebug:                     config.IsDebug,
		LogFilePath:                 config.LogFilePath,
		DBPath:                      config.DBPath,
		MaxConcurrentFileOperations: config.MaxConcurrentFileOperations,
		CopyChunkSize:               config.CopyChunkSize,
		CopyTimeout:                 time.Duration(config.CopyTimeoutSeconds) * time.Second,
		RetryAttempts:               config.RetryAttempts,
		RetryBaseDelay:              time.Duration(config.RetryBaseDelayMs) * time.Millisecond,
		VersionImportMode:           config.VersionImportMode,
		FolderNamesToIgnore:         config.FolderNamesToIgnore,
		WatchDebounce:               time.Duration(config.WatchDebounceMs) * time.Millisecond,
	}, nil
}
