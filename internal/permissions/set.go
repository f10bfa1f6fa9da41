package permissions

import (
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

// Set is the capability set resolved for one (user, project) pair. Derived on
// each check, never persisted.
type Set struct {
	Role string `json:"role"`

	View           bool `json:"view"`
	AddDirectly    bool `json:"add_directly"`
	EditDirectly   bool `json:"edit_directly"`
	DeleteDirectly bool `json:"delete_directly"`

	RequestAdd    bool `json:"request_add"`
	RequestEdit   bool `json:"request_edit"`
	RequestDelete bool `json:"request_delete"`

	ApproveRequests bool `json:"approve_requests"`
	ManageMembers   bool `json:"manage_members"`
	AssignRoles     bool `json:"assign_roles"`
}

// NoAccess is the fail-closed set: every capability false, role "None".
func NoAccess() Set {
	return Set{Role: "None"}
}

// AllCapabilities is the system-admin override set.
func AllCapabilities() Set {
	return Set{
		Role:            "Admin",
		View:            true,
		AddDirectly:     true,
		EditDirectly:    true,
		DeleteDirectly:  true,
		RequestAdd:      true,
		RequestEdit:     true,
		RequestDelete:   true,
		ApproveRequests: true,
		ManageMembers:   true,
		AssignRoles:     true,
	}
}

// forRole maps a project role onto its capability set.
func forRole(role enums.MemberRole) Set {
	switch role {
	case enums.MemberRoleViewer:
		return Set{
			Role:          "Viewer",
			View:          true,
			RequestAdd:    true,
			RequestEdit:   true,
			RequestDelete: true,
		}
	case enums.MemberRoleEditor:
		return Set{
			Role:          "Editor",
			View:          true,
			AddDirectly:   true,
			EditDirectly:  true,
			RequestAdd:    true,
			RequestEdit:   true,
			RequestDelete: true,
		}
	case enums.MemberRoleAdmin:
		s := AllCapabilities()
		s.Role = "Admin"
		return s
	case enums.MemberRoleOwner:
		s := AllCapabilities()
		s.Role = "Owner"
		return s
	}
	return NoAccess()
}

// Convenience predicates: pure projections of the resolved set.

func (s Set) CanView() bool    { return s.View }
func (s Set) CanAdd() bool     { return s.AddDirectly }
func (s Set) CanEdit() bool    { return s.EditDirectly }
func (s Set) CanDelete() bool  { return s.DeleteDirectly }
func (s Set) CanApprove() bool { return s.ApproveRequests }

// CanRequest reports whether the user may at least file a change request of
// any kind.
func (s Set) CanRequest() bool {
	return s.RequestAdd || s.RequestEdit || s.RequestDelete
}
