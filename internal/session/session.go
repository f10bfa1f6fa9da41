package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

// Session is the explicit per-user state for one sitting: who is signed in,
// which project is selected, the active search filter, and the last result
// shown. Nothing in here is ambient; every consumer receives the value.
type Session struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	SystemAdmin bool

	Memberships    []memberships.MembershipWithProject
	CurrentProject *memberships.MembershipWithProject

	Filter     search.Scope
	LastResult *search.Result

	StartedAt time.Time
	EndedAt   *time.Time
}

// Active reports whether the session is still usable.
func (s *Session) Active() bool {
	return s != nil && s.EndedAt == nil
}

// membershipFor returns the user's active membership in the given project.
func (s *Session) membershipFor(projectID uuid.UUID) *memberships.MembershipWithProject {
	for i := range s.Memberships {
		m := &s.Memberships[i]
		if m.ProjectID == projectID && m.IsActive() {
			return m
		}
	}
	return nil
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID) error
}

type membershipLister interface {
	ListUserProjects(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithProject, error)
}

type cacheInvalidator interface {
	Invalidate(userID uuid.UUID)
}

// Manager drives the session lifecycle.
type Manager struct {
	users   userFinder
	members membershipLister
	perms   cacheInvalidator
	logg    *logger.Logger
}

// NewManager builds a session manager with the required dependencies.
func NewManager(users userFinder, members membershipLister, perms cacheInvalidator, logg *logger.Logger) (*Manager, error) {
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if members == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "membership repo is required")
	}
	if perms == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "permission cache is required")
	}
	return &Manager{users: users, members: members, perms: perms, logg: logg}, nil
}

// Begin opens a session for the user: loads identity and memberships and
// starts with the widest filter. An unknown or deactivated user cannot begin.
func (m *Manager) Begin(ctx context.Context, userID uuid.UUID) (*Session, error) {
	user, err := m.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such user")
	}

	if err := m.users.TouchLastSeen(ctx, userID); err != nil && m.logg != nil {
		m.logg.Warn(m.logg.WithUserID(ctx, userID.String()), "could not record last seen")
	}

	list, err := m.members.ListUserProjects(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		SystemAdmin: user.IsSystemAdmin(),
		Memberships: list,
		Filter:      search.ScopeAll(),
		StartedAt:   time.Now().UTC(),
	}, nil
}

// SwitchProject selects a project the user actually belongs to. Cached
// permissions for the user are dropped so the next check resolves fresh, and
// a project-narrowed filter is re-labelled to the new selection.
func (m *Manager) SwitchProject(ctx context.Context, s *Session, projectID uuid.UUID) error {
	if !s.Active() {
		return pkgerrors.New(pkgerrors.CodeValidation, "session has ended")
	}

	membership := s.membershipFor(projectID)
	if membership == nil {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not an active member of that project")
	}

	s.CurrentProject = membership
	s.LastResult = nil
	m.perms.Invalidate(s.UserID)

	if s.Filter.Kind == search.ScopeKindSpecificProject {
		scope, err := search.ScopeForProject(*membership)
		if err != nil {
			return err
		}
		s.Filter = scope
	}

	if m.logg != nil {
		ctx = m.logg.WithUserID(ctx, s.UserID.String())
		ctx = m.logg.WithProjectID(ctx, projectID.String())
		m.logg.Info(ctx, "project switched")
	}
	return nil
}

// ClearProject drops the project selection, widening a project-narrowed
// filter back to everything.
func (m *Manager) ClearProject(s *Session) error {
	if !s.Active() {
		return pkgerrors.New(pkgerrors.CodeValidation, "session has ended")
	}

	s.CurrentProject = nil
	s.LastResult = nil
	m.perms.Invalidate(s.UserID)

	if s.Filter.Kind == search.ScopeKindSpecificProject {
		s.Filter = search.ScopeAll()
	}
	return nil
}

// SetFilter narrows or widens the session's search scope. A project scope
// must name a project from the session's own membership list.
func (m *Manager) SetFilter(s *Session, scope search.Scope) error {
	if !s.Active() {
		return pkgerrors.New(pkgerrors.CodeValidation, "session has ended")
	}

	if scope.Kind == search.ScopeKindSpecificProject {
		membership := s.membershipFor(scope.ProjectID)
		if membership == nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "filter names a project outside the membership list")
		}
		rebuilt, err := search.ScopeForProject(*membership)
		if err != nil {
			return err
		}
		scope = rebuilt
	}

	s.Filter = scope
	return nil
}

// RecordResult remembers the last result shown to the display surface.
func (m *Manager) RecordResult(s *Session, result search.Result) {
	if !s.Active() {
		return
	}
	s.LastResult = &result
}

// End closes the session and drops the user's cached permissions.
func (m *Manager) End(s *Session) {
	if !s.Active() {
		return
	}
	now := time.Now().UTC()
	s.EndedAt = &now
	s.LastResult = nil
	m.perms.Invalidate(s.UserID)
}
