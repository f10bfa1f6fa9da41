package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// ProjectMember links a user with a project and captures their role/status.
type ProjectMember struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID              `gorm:"column:project_id;type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	Role      enums.MemberRole       `gorm:"column:role;type:text;not null"`
	Status    enums.MembershipStatus `gorm:"column:status;type:text;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
