package models

import "time"

const (
	VersionTypeProject  = "project"
	VersionTypeSequence = "sequence"
	VersionTypeShot     = "shot"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ShotStatusPending    = "pending"
	ShotStatusInProgress = "in_progress"
	ShotStatusReview     = "review"
	ShotStatusApproved   = "approved"
	ShotStatusHold       = "hold"
	ShotStatusOmitted    = "omitted"
)

var ShotStatuses = []string{
	ShotStatusPending,
	ShotStatusInProgress,
	ShotStatusReview,
	ShotStatusApproved,
	ShotStatusHold,
	ShotStatusOmitted,
}

type Project struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null"`
	NameKey     string `gorm:"uniqueIndex;not null"`
	Path        string
	Description string
	CreatedAt   time.Time
}

type Sequence struct {
	ID          uint     `gorm:"primarykey"`
	ProjectID   uint     `gorm:"uniqueIndex:idx_sequence_name;not null"`
	Project     *Project `gorm:"constraint:OnDelete:CASCADE"`
	Name        string   `gorm:"not null"`
	NameKey     string   `gorm:"uniqueIndex:idx_sequence_name;not null"`
	Description string
	CreatedAt   time.Time
}

type Shot struct {
	ID          uint      `gorm:"primarykey"`
	SequenceID  uint      `gorm:"uniqueIndex:idx_shot_name;not null"`
	Sequence    *Sequence `gorm:"constraint:OnDelete:CASCADE"`
	Name        string    `gorm:"not null"`
	NameKey     string    `gorm:"uniqueIndex:idx_shot_name;not null"`
	Status      string    `gorm:"default:pending"`
	Description string
	CreatedAt   time.Time
}

type Worker struct {
	ID         uint   `gorm:"primarykey"`
	Name       string `gorm:"uniqueIndex;not null"`
	Password   string
	Department string
	Role       string `gorm:"default:user"`
	CreatedAt  time.Time
}

// Version belongs to exactly one of Project, Sequence or Shot; VersionType says which.
type Version struct {
	ID            uint      `gorm:"primarykey"`
	VersionType   string    `gorm:"index:idx_version_parent;not null"`
	ProjectID     *uint     `gorm:"index:idx_version_parent"`
	Project       *Project  `gorm:"constraint:OnDelete:CASCADE"`
	SequenceID    *uint     `gorm:"index:idx_version_parent"`
	Sequence      *Sequence `gorm:"constraint:OnDelete:CASCADE"`
	ShotID        *uint     `gorm:"index:idx_version_parent"`
	Shot          *Shot     `gorm:"constraint:OnDelete:CASCADE"`
	VersionNumber uint      `gorm:"not null"`
	WorkerID      uint
	Worker        *Worker
	FilePath      string
	PreviewPath   string
	RenderPath    string
	Comment       string
	IsLatest      bool
	Status        string `gorm:"default:pending"`
	CreatedAt     time.Time
}

type Setting struct {
	SettingKey   string `gorm:"primaryKey"`
	SettingValue string
}
