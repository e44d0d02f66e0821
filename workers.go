package main

import (
	"errors"
	"fmt"
	"gorm.io/gorm"
	"pipe-tools/crypto"
	"pipe-tools/models"
	"strings"
)

// SystemWorkerName owns versions created by the synchronizer. It has no password and cannot log in.
const SystemWorkerName = "system"

func ensureSystemWorker(db *gorm.DB) (*models.Worker, error) {
	worker := models.Worker{
		Name:       SystemWorkerName,
		Department: "pipeline",
		Role:       models.RoleUser,
	}

	result := db.Where(models.Worker{Name: SystemWorkerName}).FirstOrCreate(&worker)

	if result.Error != nil {
		return nil, result.Error
	}

	return &worker, nil
}

func (ctx *Context) countAdmins() (int64, error) {
	var count int64
	result := ctx.DB.Model(&models.Worker{}).Where("role = ?", models.RoleAdmin).Count(&count)

	return count, result.Error
}

// CreateWorker needs an admin session, except for the first worker which becomes the admin.
func (ctx *Context) CreateWorker(name, password, department, role string) (*models.Worker, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, ErrEmptyName
	}

	if name == SystemWorkerName {
		return nil, fmt.Errorf("worker %q: %w", name, ErrAlreadyExists)
	}

	if role == "" {
		role = models.RoleUser
	}

	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	admins, err := ctx.countAdmins()

	if err != nil {
		return nil, err
	}

	if admins == 0 {
		role = models.RoleAdmin
	} else if err := RequireAdmin(ctx.Session); err != nil {
		return nil, err
	}

	var existing int64

	if err := ctx.DB.Model(&models.Worker{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		return nil, err
	}

	if existing > 0 {
		return nil, fmt.Errorf("worker %q: %w", name, ErrAlreadyExists)
	}

	hashed, err := crypto.HashPassword(password)

	if err != nil {
		return nil, err
	}

	worker := &models.Worker{
		Name:       name,
		Password:   hashed,
		Department: department,
		Role:       role,
	}

	if err := ctx.DB.Create(worker).Error; err != nil {
		return nil, err
	}

	return worker, nil
}

func (ctx *Context) ListWorkers() ([]models.Worker, error) {
	var workers []models.Worker
	result := ctx.DB.Order("name").Find(&workers)

	return workers, result.Error
}

func (ctx *Context) FindWorker(name string) (*models.Worker, error) {
	var worker models.Worker
	result := ctx.DB.Where("name = ?", name).First(&worker)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("worker %q: %w", name, ErrNotFound)
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &worker, nil
}

func (ctx *Context) Authenticate(name, password string) (*Session, error) {
	worker, err := ctx.FindWorker(name)

	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	if err := crypto.CheckPassword(worker.Password, password); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return &Session{Worker: worker}, nil
}
