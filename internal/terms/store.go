package terms

import (
	"context"

	"github.com/google/uuid"
)

// Owner scopes a store call. Personal lookups use UserID alone; project
// lookups require both, and the project store refuses to serve rows the
// user's membership does not cover.
type Owner struct {
	UserID    uuid.UUID
	ProjectID uuid.UUID
}

// Update carries the replacement field values for a term edit, plus the
// reason recorded in the audit trail.
type Update struct {
	Definition string
	Category   string
	Notes      string
	Reason     string
}

// Store is the adapter contract both glossaries implement.
//
// FindByKey is exact-match only: the key is normalized before comparison and
// a miss is (nil, nil), never an error. Substring search is a separate,
// deterministically ordered operation.
type Store interface {
	FindByKey(ctx context.Context, key string, owner Owner) (*Record, error)
	SearchBySubstring(ctx context.Context, fragment string, owner Owner) ([]Record, error)
	Add(ctx context.Context, record Record, owner Owner) error
	Update(ctx context.Context, key string, update Update, owner Owner) (bool, error)
	SoftDelete(ctx context.Context, key string, owner Owner, reason string) error
}
