package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// EditHistory records one audit row per changed field on a term.
type EditHistory struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TermSource      enums.TermSource `gorm:"column:term_source;type:text;not null"`
	TermID          uuid.UUID        `gorm:"column:term_id;type:uuid;not null;index"`
	FieldName       string           `gorm:"column:field_name;type:text;not null"`
	OldValue        string           `gorm:"column:old_value;type:text;not null;default:''"`
	NewValue        string           `gorm:"column:new_value;type:text;not null;default:''"`
	Reason          string           `gorm:"column:reason;type:text;not null;default:''"`
	ChangedByUserID uuid.UUID        `gorm:"column:changed_by_user_id;type:uuid;not null"`
	ChangedAt       time.Time        `gorm:"column:changed_at;autoCreateTime"`
}
