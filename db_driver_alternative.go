//go:build alternative_driver

package main

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// GetDriver is a pure Go build for machines without a C toolchain. Foreign keys are
// switched on so deletes cascade.
func GetDriver(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn+"?_pragma=foreign_keys(1)"), gormConfig)
}
