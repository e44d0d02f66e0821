//go:build !alternative_driver

package main

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// GetDriver requires CGO for this implementation. Foreign keys are
// switched on so deletes cascade.
func GetDriver(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn+"?_foreign_keys=on"), gormConfig)
}
