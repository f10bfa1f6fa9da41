package terms

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// ProjectStore serves a shared project glossary. Ownership context is
// (user, project); reads are gated on an active membership so the store never
// returns a row the caller cannot view.
type ProjectStore struct {
	db *gorm.DB
}

// NewProjectStore binds the store to the provided GORM connection.
func NewProjectStore(conn *gorm.DB) *ProjectStore {
	return &ProjectStore{db: conn}
}

var _ Store = (*ProjectStore)(nil)

type projectTermRow struct {
	models.Abbreviation
	ProjectCode string `gorm:"column:project_code"`
}

func projectToRecord(row projectTermRow) Record {
	return Record{
		Key:        row.Key,
		Definition: row.Definition,
		Category:   row.Category,
		Notes:      row.Notes,
		Source:     ProjectSource(row.ProjectCode),
		CreatedAt:  row.CreatedAt,
	}
}

// visibleTerms builds the base query joining the project scope and the
// caller's active membership.
func (s *ProjectStore) visibleTerms(ctx context.Context, owner Owner) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Abbreviation{}).
		Select("abbreviations.*, projects.code AS project_code").
		Joins("JOIN abbreviation_projects ON abbreviation_projects.abbreviation_id = abbreviations.id").
		Joins("JOIN projects ON projects.id = abbreviation_projects.project_id").
		Joins("JOIN project_members ON project_members.project_id = abbreviation_projects.project_id AND project_members.user_id = ? AND project_members.status = ?",
			owner.UserID, enums.MembershipStatusActive).
		Where("abbreviation_projects.project_id = ? AND abbreviations.is_active = ?", owner.ProjectID, true)
}

// FindByKey returns the project's active term with the exact normalized key,
// or (nil, nil) on a miss. A caller without an active membership sees nothing.
func (s *ProjectStore) FindByKey(ctx context.Context, key string, owner Owner) (*Record, error) {
	key = CleanKey(key)
	if key == "" {
		return nil, nil
	}

	var rows []projectTermRow
	err := s.visibleTerms(ctx, owner).
		Where("abbreviations.key = ?", key).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find project term")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	record := projectToRecord(rows[0])
	return &record, nil
}

// SearchBySubstring returns the project's active terms whose key contains the
// cleaned fragment, ordered by key.
func (s *ProjectStore) SearchBySubstring(ctx context.Context, fragment string, owner Owner) ([]Record, error) {
	fragment = CleanKey(fragment)
	if fragment == "" {
		return nil, nil
	}

	var rows []projectTermRow
	err := s.visibleTerms(ctx, owner).
		Where("abbreviations.key LIKE ?", "%"+fragment+"%").
		Order("abbreviations.key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search project terms")
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, projectToRecord(row))
	}
	return records, nil
}

// activeTermByKey loads the project's live abbreviation row without the
// membership join; callers of the mutation path have already been through the
// permission resolver.
func (s *ProjectStore) activeTermByKey(ctx context.Context, key string, projectID uuid.UUID) (*models.Abbreviation, error) {
	var rows []models.Abbreviation
	err := s.db.WithContext(ctx).
		Model(&models.Abbreviation{}).
		Select("abbreviations.*").
		Joins("JOIN abbreviation_projects ON abbreviation_projects.abbreviation_id = abbreviations.id").
		Where("abbreviation_projects.project_id = ? AND abbreviations.key = ? AND abbreviations.is_active = ?", projectID, key, true).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Add inserts a new term into the project glossary. A live duplicate key in
// the same project is a conflict.
func (s *ProjectStore) Add(ctx context.Context, record Record, owner Owner) error {
	existing, err := s.activeTermByKey(ctx, record.Key, owner.ProjectID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check project term")
	}
	if existing != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "term may already exist")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		abbrev := models.Abbreviation{
			ID:              uuid.New(),
			Key:             record.Key,
			Definition:      record.Definition,
			Category:        record.Category,
			Notes:           record.Notes,
			IsActive:        true,
			CreatedByUserID: owner.UserID,
		}
		if err := tx.Create(&abbrev).Error; err != nil {
			return err
		}
		link := models.AbbreviationProject{
			ID:             uuid.New(),
			AbbreviationID: abbrev.ID,
			ProjectID:      owner.ProjectID,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "term may already exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add project term")
	}
	return nil
}

// Update replaces definition/category/notes after a field-by-field compare.
// Identical values are a no-op success with zero audit rows written.
func (s *ProjectStore) Update(ctx context.Context, key string, update Update, owner Owner) (bool, error) {
	key = CleanKey(key)

	row, err := s.activeTermByKey(ctx, key, owner.ProjectID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project term")
	}
	if row == nil {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "no such term")
	}

	changes := diffFields(row.Definition, row.Category, row.Notes, update)
	if len(changes) == 0 {
		return false, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"definition": update.Definition,
			"category":   update.Category,
			"notes":      update.Notes,
		}
		if err := tx.Model(&models.Abbreviation{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
			return err
		}
		return appendAudit(tx, enums.TermSourceProject, row.ID, owner.UserID, update.Reason, changes)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update project term")
	}
	return true, nil
}

// SoftDelete marks the term inactive. Deleting a missing or already-inactive
// key reports not found.
func (s *ProjectStore) SoftDelete(ctx context.Context, key string, owner Owner, reason string) error {
	key = CleanKey(key)

	row, err := s.activeTermByKey(ctx, key, owner.ProjectID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load project term")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such term")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Abbreviation{}).Where("id = ?", row.ID).Update("is_active", false).Error; err != nil {
			return err
		}
		change := []fieldChange{{field: "status", oldValue: "active", newValue: "deleted"}}
		return appendAudit(tx, enums.TermSourceProject, row.ID, owner.UserID, reason, change)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project term")
	}
	return nil
}
