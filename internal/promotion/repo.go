package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// Repository persists glossary change requests.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts a new request row, assigning its identifier.
func (r *Repository) Create(ctx context.Context, request *models.TermRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create term request")
	}
	return nil
}

// FindByID returns the request, or (nil, nil) when no row matches.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TermRequest, error) {
	var rows []models.TermRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find term request")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindPendingByKey returns the project's open request for the given key and
// kind, or (nil, nil) when none is on file.
func (r *Repository) FindPendingByKey(ctx context.Context, projectID uuid.UUID, kind enums.RequestKind, key string) (*models.TermRequest, error) {
	var rows []models.TermRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND kind = ? AND key = ? AND status = ?",
			projectID, kind, key, enums.RequestStatusPending).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find pending request")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListPending returns the project's open requests, oldest first.
func (r *Repository) ListPending(ctx context.Context, projectID uuid.UUID) ([]models.TermRequest, error) {
	var rows []models.TermRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, enums.RequestStatusPending).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending requests")
	}
	return rows, nil
}

// MarkReviewed records the review verdict on the row.
func (r *Repository) MarkReviewed(ctx context.Context, id uuid.UUID, status enums.RequestStatus, reviewerID uuid.UUID, note string) error {
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).
		Model(&models.TermRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              status,
			"review_note":         note,
			"reviewed_by_user_id": reviewerID,
			"reviewed_at":         now,
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "review term request")
	}
	return nil
}
