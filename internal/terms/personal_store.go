package terms

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// PersonalStore serves the per-user private glossary. Ownership context is
// the user id alone.
type PersonalStore struct {
	db *gorm.DB
}

// NewPersonalStore binds the store to the provided GORM connection.
func NewPersonalStore(conn *gorm.DB) *PersonalStore {
	return &PersonalStore{db: conn}
}

var _ Store = (*PersonalStore)(nil)

func personalToRecord(row models.PersonalAbbreviation) Record {
	return Record{
		Key:        row.Key,
		Definition: row.Definition,
		Category:   row.Category,
		Notes:      row.Notes,
		Source:     PersonalSource,
		CreatedAt:  row.CreatedAt,
	}
}

// FindByKey returns the owner's active term with the exact normalized key,
// or (nil, nil) on a miss.
func (s *PersonalStore) FindByKey(ctx context.Context, key string, owner Owner) (*Record, error) {
	key = CleanKey(key)
	if key == "" {
		return nil, nil
	}

	var row models.PersonalAbbreviation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ? AND is_active = ?", owner.UserID, key, true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find personal term")
	}

	record := personalToRecord(row)
	return &record, nil
}

// SearchBySubstring returns the owner's active terms whose key contains the
// cleaned fragment, ordered by key.
func (s *PersonalStore) SearchBySubstring(ctx context.Context, fragment string, owner Owner) ([]Record, error) {
	fragment = CleanKey(fragment)
	if fragment == "" {
		return nil, nil
	}

	var rows []models.PersonalAbbreviation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND key LIKE ?", owner.UserID, true, "%"+fragment+"%").
		Order("key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search personal terms")
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, personalToRecord(row))
	}
	return records, nil
}

// Add inserts a new personal term. A live duplicate key for the same owner is
// a conflict, not a crash.
func (s *PersonalStore) Add(ctx context.Context, record Record, owner Owner) error {
	existing, err := s.FindByKey(ctx, record.Key, owner)
	if err != nil {
		return err
	}
	if existing != nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "term may already exist")
	}

	row := models.PersonalAbbreviation{
		ID:         uuid.New(),
		UserID:     owner.UserID,
		Key:        record.Key,
		Definition: record.Definition,
		Category:   record.Category,
		Notes:      record.Notes,
		IsActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "term may already exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add personal term")
	}
	return nil
}

// Update replaces definition/category/notes after a field-by-field compare.
// Identical values are a no-op success with zero audit rows written.
func (s *PersonalStore) Update(ctx context.Context, key string, update Update, owner Owner) (bool, error) {
	key = CleanKey(key)

	var row models.PersonalAbbreviation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ? AND is_active = ?", owner.UserID, key, true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, pkgerrors.New(pkgerrors.CodeNotFound, "no such term")
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load personal term")
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
		if err := tx.Model(&models.PersonalAbbreviation{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
			return err
		}
		return appendAudit(tx, enums.TermSourcePersonal, row.ID, owner.UserID, update.Reason, changes)
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update personal term")
	}
	return true, nil
}

// SoftDelete marks the term inactive. Deleting a missing or already-inactive
// key reports not found.
func (s *PersonalStore) SoftDelete(ctx context.Context, key string, owner Owner, reason string) error {
	key = CleanKey(key)

	var row models.PersonalAbbreviation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND key = ? AND is_active = ?", owner.UserID, key, true).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no such term")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load personal term")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PersonalAbbreviation{}).Where("id = ?", row.ID).Update("is_active", false).Error; err != nil {
			return err
		}
		change := []fieldChange{{field: "status", oldValue: "active", newValue: "deleted"}}
		return appendAudit(tx, enums.TermSourcePersonal, row.ID, owner.UserID, reason, change)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete personal term")
	}
	return nil
}
