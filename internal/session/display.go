package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
)

// DisplayPort is the outbound contract to whatever surface renders results.
// The core never knows whether the far side is a window, a terminal, or a
// test double.
type DisplayPort interface {
	// DisplayResult shows the merged outcome of one lookup together with the
	// filter it ran under and the projects the user could narrow to.
	DisplayResult(ctx context.Context, result search.Result, available []memberships.MembershipWithProject) error

	// DisplayError surfaces a failure the user should see.
	DisplayError(ctx context.Context, err error) error

	// Intents is the single inbound channel of user actions. The surface
	// closes it when it shuts down.
	Intents() <-chan Intent
}

// Intent is one user action arriving from the display surface. The concrete
// types below are the only implementations.
type Intent interface {
	isIntent()
}

// AddRequested asks for a new term in the personal glossary or, when
// ProjectID is set, in that project.
type AddRequested struct {
	Key        string
	Definition string
	Category   string
	Notes      string
	ProjectID  *uuid.UUID
}

// EditRequested asks for replacement field values on an existing term.
type EditRequested struct {
	Key       string
	Update    terms.Update
	ProjectID *uuid.UUID
}

// DeleteRequested asks for a soft delete of an existing term.
type DeleteRequested struct {
	Key       string
	Reason    string
	ProjectID *uuid.UUID
}

// PromoteRequested asks to copy a personal term into a project glossary.
type PromoteRequested struct {
	Key       string
	ProjectID uuid.UUID
}

// FilterChanged asks to change the session's search scope.
type FilterChanged struct {
	Scope search.Scope
}

func (AddRequested) isIntent()     {}
func (EditRequested) isIntent()    {}
func (DeleteRequested) isIntent()  {}
func (PromoteRequested) isIntent() {}
func (FilterChanged) isIntent()    {}
