package models

import (
	"time"

	"github.com/google/uuid"
)

// Abbreviation is a shared glossary row. Visibility is granted per project
// through AbbreviationProject join rows.
type Abbreviation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key             string    `gorm:"type:text;not null;index"`
	Definition      string    `gorm:"type:text;not null"`
	Category        string    `gorm:"type:text;not null;default:''"`
	Notes           string    `gorm:"type:text;not null;default:''"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	CreatedByUserID uuid.UUID `gorm:"column:created_by_user_id;type:uuid;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// AbbreviationProject scopes an Abbreviation to a Project.
type AbbreviationProject struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	AbbreviationID uuid.UUID `gorm:"column:abbreviation_id;type:uuid;not null;uniqueIndex:idx_abbreviation_projects_pair"`
	ProjectID      uuid.UUID `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_abbreviation_projects_pair"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

// PersonalAbbreviation is a per-user glossary row, visible only to its owner.
type PersonalAbbreviation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Key        string    `gorm:"type:text;not null"`
	Definition string    `gorm:"type:text;not null"`
	Category   string    `gorm:"type:text;not null;default:''"`
	Notes      string    `gorm:"type:text;not null;default:''"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
