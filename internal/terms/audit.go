package terms

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

type fieldChange struct {
	field    string
	oldValue string
	newValue string
}

// diffFields compares current values against an update, field by field.
// An empty diff means the update is a no-op and nothing should be written.
func diffFields(definition, category, notes string, update Update) []fieldChange {
	var changes []fieldChange
	if update.Definition != definition {
		changes = append(changes, fieldChange{field: "definition", oldValue: definition, newValue: update.Definition})
	}
	if update.Category != category {
		changes = append(changes, fieldChange{field: "category", oldValue: category, newValue: update.Category})
	}
	if update.Notes != notes {
		changes = append(changes, fieldChange{field: "notes", oldValue: notes, newValue: update.Notes})
	}
	return changes
}

// appendAudit writes one EditHistory row per changed field inside the caller's
// transaction.
func appendAudit(tx *gorm.DB, source enums.TermSource, termID, changedBy uuid.UUID, reason string, changes []fieldChange) error {
	for _, change := range changes {
		row := models.EditHistory{
			ID:              uuid.New(),
			TermSource:      source,
			TermID:          termID,
			FieldName:       change.field,
			OldValue:        change.oldValue,
			NewValue:        change.newValue,
			Reason:          reason,
			ChangedByUserID: changedBy,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
