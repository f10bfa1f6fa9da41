package permissions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
)

type stubUserLookup struct {
	user *models.User
	err  error
}

func (s stubUserLookup) FindByID(context.Context, uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

type stubMembershipLookup struct {
	membership *models.ProjectMember
	err        error
	calls      int
}

func (s *stubMembershipLookup) GetMembership(context.Context, uuid.UUID, uuid.UUID) (*models.ProjectMember, error) {
	s.calls++
	return s.membership, s.err
}

func activeUser() *models.User {
	return &models.User{ID: uuid.New(), Email: "u@example.com", DisplayName: "U", IsActive: true}
}

func membershipWith(role enums.MemberRole, status enums.MembershipStatus) *models.ProjectMember {
	return &models.ProjectMember{ID: uuid.New(), Role: role, Status: status}
}

func newResolver(t *testing.T, users stubUserLookup, members *stubMembershipLookup) *Resolver {
	t.Helper()
	r, err := NewResolver(users, members, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func TestResolveNoMembershipIsNoAccess(t *testing.T) {
	r := newResolver(t, stubUserLookup{user: activeUser()}, &stubMembershipLookup{})

	set := r.Resolve(context.Background(), uuid.New(), uuid.New())
	if set.Role != "None" {
		t.Fatalf("expected role None, got %s", set.Role)
	}
	if set.CanView() || set.CanAdd() || set.CanEdit() || set.CanDelete() || set.CanApprove() || set.CanRequest() {
		t.Fatal("expected every capability false")
	}
}

func TestResolveFailsClosedOnLookupErrors(t *testing.T) {
	r := newResolver(t, stubUserLookup{err: errors.New("db down")}, &stubMembershipLookup{})
	set := r.Resolve(context.Background(), uuid.New(), uuid.New())
	if set != NoAccess() {
		t.Fatalf("expected no access on user lookup failure, got %+v", set)
	}

	r = newResolver(t, stubUserLookup{user: activeUser()}, &stubMembershipLookup{err: errors.New("db down")})
	set = r.Resolve(context.Background(), uuid.New(), uuid.New())
	if set != NoAccess() {
		t.Fatalf("expected no access on membership lookup failure, got %+v", set)
	}
}

func TestResolveSystemAdminBypassesMembership(t *testing.T) {
	admin := activeUser()
	role := models.SystemRoleAdmin
	admin.SystemRole = &role

	members := &stubMembershipLookup{}
	r := newResolver(t, stubUserLookup{user: admin}, members)

	set := r.Resolve(context.Background(), admin.ID, uuid.New())
	if set != AllCapabilities() {
		t.Fatalf("expected full capabilities, got %+v", set)
	}
	if members.calls != 0 {
		t.Fatalf("expected membership lookup to be skipped, got %d calls", members.calls)
	}
}

func TestResolveInactiveMembershipIsNoAccess(t *testing.T) {
	members := &stubMembershipLookup{membership: membershipWith(enums.MemberRoleAdmin, enums.MembershipStatusInactive)}
	r := newResolver(t, stubUserLookup{user: activeUser()}, members)

	if set := r.Resolve(context.Background(), uuid.New(), uuid.New()); set != NoAccess() {
		t.Fatalf("expected no access for inactive membership, got %+v", set)
	}
}

func TestResolveRoleMapping(t *testing.T) {
	cases := []struct {
		role       enums.MemberRole
		wantRole   string
		canAdd     bool
		canDelete  bool
		canApprove bool
	}{
		{enums.MemberRoleViewer, "Viewer", false, false, false},
		{enums.MemberRoleEditor, "Editor", true, false, false},
		{enums.MemberRoleAdmin, "Admin", true, true, true},
		{enums.MemberRoleOwner, "Owner", true, true, true},
	}

	for _, tc := range cases {
		members := &stubMembershipLookup{membership: membershipWith(tc.role, enums.MembershipStatusActive)}
		r := newResolver(t, stubUserLookup{user: activeUser()}, members)

		set := r.Resolve(context.Background(), uuid.New(), uuid.New())
		if set.Role != tc.wantRole {
			t.Fatalf("%s: expected role %s, got %s", tc.role, tc.wantRole, set.Role)
		}
		if !set.CanView() {
			t.Fatalf("%s: expected view", tc.role)
		}
		if set.CanAdd() != tc.canAdd {
			t.Fatalf("%s: expected canAdd=%v", tc.role, tc.canAdd)
		}
		if set.CanDelete() != tc.canDelete {
			t.Fatalf("%s: expected canDelete=%v", tc.role, tc.canDelete)
		}
		if set.CanApprove() != tc.canApprove {
			t.Fatalf("%s: expected canApprove=%v", tc.role, tc.canApprove)
		}
		if !set.CanRequest() {
			t.Fatalf("%s: expected request capabilities", tc.role)
		}
	}
}

func TestResolveCachesAndInvalidates(t *testing.T) {
	members := &stubMembershipLookup{membership: membershipWith(enums.MemberRoleEditor, enums.MembershipStatusActive)}
	r := newResolver(t, stubUserLookup{user: activeUser()}, members)

	userID := uuid.New()
	projectID := uuid.New()

	r.Resolve(context.Background(), userID, projectID)
	r.Resolve(context.Background(), userID, projectID)
	if members.calls != 1 {
		t.Fatalf("expected one membership lookup, got %d", members.calls)
	}

	r.Invalidate(userID)
	r.Resolve(context.Background(), userID, projectID)
	if members.calls != 2 {
		t.Fatalf("expected second lookup after invalidation, got %d", members.calls)
	}
}
