package main

import (
	"gorm.io/gorm"
	"pipe-tools/config"
)

type Context struct {
	Config  *config.Config
	DB      *gorm.DB
	Session *Session
}
