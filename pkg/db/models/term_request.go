package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// TermRequest is a pending change against a project glossary awaiting approval.
type TermRequest struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Kind              enums.RequestKind   `gorm:"column:kind;type:text;not null"`
	ProjectID         uuid.UUID           `gorm:"column:project_id;type:uuid;not null;index"`
	Key               string              `gorm:"type:text;not null"`
	Definition        string              `gorm:"type:text;not null"`
	Category          string              `gorm:"type:text;not null;default:''"`
	Notes             string              `gorm:"type:text;not null;default:''"`
	RequestedByUserID uuid.UUID           `gorm:"column:requested_by_user_id;type:uuid;not null"`
	Status            enums.RequestStatus `gorm:"column:status;type:text;not null"`
	ReviewNote        string              `gorm:"column:review_note;type:text;not null;default:''"`
	ReviewedByUserID  *uuid.UUID          `gorm:"column:reviewed_by_user_id;type:uuid"`
	ReviewedAt        *time.Time          `gorm:"column:reviewed_at"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
