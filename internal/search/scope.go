package search

import (
	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// ScopeKind selects which glossaries a search consults.
type ScopeKind string

const (
	ScopeKindAll             ScopeKind = "all"
	ScopeKindPersonalOnly    ScopeKind = "personal"
	ScopeKindSpecificProject ScopeKind = "project"
)

// Scope is the view filter for a search. ProjectID and Label are set only for
// ScopeKindSpecificProject, and a project scope is only constructible from a
// membership the user actually holds, so the label is always resolved.
type Scope struct {
	Kind      ScopeKind `json:"kind"`
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	Label     string    `json:"label,omitempty"`
}

// ScopeAll consults the personal glossary and every project the user belongs to.
func ScopeAll() Scope {
	return Scope{Kind: ScopeKindAll}
}

// ScopePersonal consults only the personal glossary.
func ScopePersonal() Scope {
	return Scope{Kind: ScopeKindPersonalOnly}
}

// ScopeForProject narrows the search to one project, carrying its display
// label. The membership must be active.
func ScopeForProject(m memberships.MembershipWithProject) (Scope, error) {
	if !m.IsActive() {
		return Scope{}, pkgerrors.New(pkgerrors.CodeForbidden, "membership is not active")
	}
	label := m.ProjectCode
	if label == "" {
		label = m.ProjectName
	}
	return Scope{
		Kind:      ScopeKindSpecificProject,
		ProjectID: m.ProjectID,
		Label:     label,
	}, nil
}
