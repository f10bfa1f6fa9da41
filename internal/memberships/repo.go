package memberships

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// Repository exposes project membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUserProjects returns the projects a user belongs to along with
// membership metadata, ordered by project name.
func (r *Repository) ListUserProjects(ctx context.Context, userID uuid.UUID) ([]MembershipWithProject, error) {
	var rows []membershipWithProjectRow

	err := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Select("project_members.*, projects.name AS project_name, projects.code AS project_code").
		Joins("JOIN projects ON projects.id = project_members.project_id").
		Where("project_members.user_id = ? AND projects.is_active = ?", userID, true).
		Order("projects.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return membershipRowsToDTO(rows), nil
}

// GetMembership retrieves a membership by user and project. A missing row is
// returned as (nil, nil); the permission resolver treats it as no access.
func (r *Repository) GetMembership(ctx context.Context, userID, projectID uuid.UUID) (*models.ProjectMember, error) {
	var membership models.ProjectMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, projectID, userID uuid.UUID, role enums.MemberRole, status enums.MembershipStatus) (*models.ProjectMember, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", status)
	}

	membership := &models.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		Status:    status,
	}

	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// SetStatus flips a membership between active and inactive.
func (r *Repository) SetStatus(ctx context.Context, projectID, userID uuid.UUID, status enums.MembershipStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid membership status %q", status)
	}
	return r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("status", status).Error
}

// UserHasRole reports whether the user holds one of the provided roles for an
// active membership on the project.
func (r *Repository) UserHasRole(ctx context.Context, userID, projectID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("user_id = ? AND project_id = ? AND status = ? AND role IN ?", userID, projectID, enums.MembershipStatusActive, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
