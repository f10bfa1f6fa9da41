package promotion

import (
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// RequestDTO is the presentation shape of a glossary change request.
type RequestDTO struct {
	ID          uuid.UUID           `json:"id"`
	Kind        enums.RequestKind   `json:"kind"`
	ProjectID   uuid.UUID           `json:"project_id"`
	Key         string              `json:"key"`
	Definition  string              `json:"definition"`
	Category    string              `json:"category,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	RequestedBy uuid.UUID           `json:"requested_by"`
	Status      enums.RequestStatus `json:"status"`
	ReviewNote  string              `json:"review_note,omitempty"`
	ReviewedBy  *uuid.UUID          `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time          `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// PromoteOutcome reports how a promotion landed. Exactly one of the two
// shapes applies: Promoted true with no request, or Promoted false with the
// pending request on file.
type PromoteOutcome struct {
	Promoted bool        `json:"promoted"`
	Request  *RequestDTO `json:"request,omitempty"`
}
