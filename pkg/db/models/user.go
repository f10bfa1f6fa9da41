package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemRoleAdmin grants every capability in every project.
const SystemRoleAdmin = "admin"

// User represents the canonical identity entity.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email       string     `gorm:"type:text;not null;uniqueIndex"`
	DisplayName string     `gorm:"column:display_name;not null"`
	SystemRole  *string    `gorm:"column:system_role"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	LastSeenAt  *time.Time `gorm:"column:last_seen_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// IsSystemAdmin reports whether the user bypasses per-project permission lookup.
func (u *User) IsSystemAdmin() bool {
	return u != nil && u.SystemRole != nil && *u.SystemRole == SystemRoleAdmin
}
