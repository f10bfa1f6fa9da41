package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

type stubDisplay struct {
	intents chan Intent
	errs    []error
}

func newStubDisplay(queued ...Intent) *stubDisplay {
	d := &stubDisplay{intents: make(chan Intent, len(queued)+1)}
	for _, intent := range queued {
		d.intents <- intent
	}
	close(d.intents)
	return d
}

func (s *stubDisplay) DisplayResult(context.Context, search.Result, []memberships.MembershipWithProject) error {
	return nil
}

func (s *stubDisplay) DisplayError(_ context.Context, err error) error {
	s.errs = append(s.errs, err)
	return nil
}

func (s *stubDisplay) Intents() <-chan Intent {
	return s.intents
}

type stubMutator struct {
	outcome terms.MutationOutcome
	err     error
	adds    []terms.AddInput
	edits   []terms.EditInput
	deletes []terms.DeleteInput
	keys    []string
}

func (s *stubMutator) Add(_ context.Context, _ uuid.UUID, input terms.AddInput) (terms.MutationOutcome, error) {
	s.adds = append(s.adds, input)
	return s.outcome, s.err
}

func (s *stubMutator) Edit(_ context.Context, _ uuid.UUID, key string, input terms.EditInput) (terms.MutationOutcome, error) {
	s.keys = append(s.keys, key)
	s.edits = append(s.edits, input)
	return s.outcome, s.err
}

func (s *stubMutator) Delete(_ context.Context, _ uuid.UUID, key string, input terms.DeleteInput) (terms.MutationOutcome, error) {
	s.keys = append(s.keys, key)
	s.deletes = append(s.deletes, input)
	return s.outcome, s.err
}

type stubPromoter struct {
	outcome  promotion.PromoteOutcome
	err      error
	keys     []string
	projects []uuid.UUID
}

func (s *stubPromoter) Promote(_ context.Context, _ uuid.UUID, key string, membership memberships.MembershipWithProject) (promotion.PromoteOutcome, error) {
	s.keys = append(s.keys, key)
	s.projects = append(s.projects, membership.ProjectID)
	return s.outcome, s.err
}

func openSession(list ...memberships.MembershipWithProject) *Session {
	return &Session{
		UserID:      uuid.New(),
		Memberships: list,
		Filter:      search.ScopeAll(),
		StartedAt:   time.Now().UTC(),
	}
}

func newTestDispatcher(t *testing.T, mutator *stubMutator, promoter *stubPromoter) *Dispatcher {
	t.Helper()
	manager := newTestManager(t, &stubUsers{user: activeUser()}, &stubMembers{}, &stubInvalidator{})
	d, err := NewDispatcher(manager, mutator, promoter, nil)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func TestNewDispatcherRequiresDependencies(t *testing.T) {
	if _, err := NewDispatcher(nil, &stubMutator{}, &stubPromoter{}, nil); !pkgerrors.Is(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDispatcherRoutesMutationIntents(t *testing.T) {
	projectID := uuid.New()
	mutator := &stubMutator{outcome: terms.MutationOutcome{Applied: true}}
	dispatcher := newTestDispatcher(t, mutator, &stubPromoter{})
	display := newStubDisplay(
		AddRequested{Key: "FPGA", Definition: "Field Programmable Gate Array", Category: "hardware"},
		EditRequested{Key: "FPGA", Update: terms.Update{Definition: "updated", Reason: "typo"}, ProjectID: &projectID},
		DeleteRequested{Key: "FPGA", Reason: "obsolete"},
	)

	if err := dispatcher.Run(context.Background(), openSession(), display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(display.errs) != 0 {
		t.Fatalf("no errors expected, got %v", display.errs)
	}
	if len(mutator.adds) != 1 || mutator.adds[0].Key != "FPGA" || mutator.adds[0].ProjectID != nil {
		t.Fatalf("unexpected add: %+v", mutator.adds)
	}
	if len(mutator.edits) != 1 || mutator.edits[0].Reason != "typo" || mutator.edits[0].ProjectID == nil {
		t.Fatalf("unexpected edit: %+v", mutator.edits)
	}
	if len(mutator.deletes) != 1 || mutator.deletes[0].Reason != "obsolete" {
		t.Fatalf("unexpected delete: %+v", mutator.deletes)
	}
	if len(mutator.keys) != 2 || mutator.keys[0] != "FPGA" || mutator.keys[1] != "FPGA" {
		t.Fatalf("unexpected keys: %v", mutator.keys)
	}
}

func TestDispatcherPromotesThroughOwnMembership(t *testing.T) {
	membership := membershipIn(uuid.New(), "AVX", enums.MembershipStatusActive)
	promoter := &stubPromoter{outcome: promotion.PromoteOutcome{Promoted: true}}
	dispatcher := newTestDispatcher(t, &stubMutator{}, promoter)
	display := newStubDisplay(PromoteRequested{Key: "FPGA", ProjectID: membership.ProjectID})

	if err := dispatcher.Run(context.Background(), openSession(membership), display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(display.errs) != 0 {
		t.Fatalf("no errors expected, got %v", display.errs)
	}
	if len(promoter.keys) != 1 || promoter.keys[0] != "FPGA" {
		t.Fatalf("unexpected promote keys: %v", promoter.keys)
	}
	if len(promoter.projects) != 1 || promoter.projects[0] != membership.ProjectID {
		t.Fatalf("promotion must carry the session's membership, got %v", promoter.projects)
	}
}

func TestDispatcherRefusesPromoteOutsideMemberships(t *testing.T) {
	promoter := &stubPromoter{}
	dispatcher := newTestDispatcher(t, &stubMutator{}, promoter)
	display := newStubDisplay(PromoteRequested{Key: "FPGA", ProjectID: uuid.New()})

	if err := dispatcher.Run(context.Background(), openSession(), display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(promoter.keys) != 0 {
		t.Fatal("promotion outside the membership list must not reach the service")
	}
	if len(display.errs) != 1 || !pkgerrors.Is(display.errs[0], pkgerrors.CodeForbidden) {
		t.Fatalf("expected a forbidden error on the display, got %v", display.errs)
	}
}

func TestDispatcherAppliesFilterChanges(t *testing.T) {
	membership := membershipIn(uuid.New(), "AVX", enums.MembershipStatusActive)
	scope, err := search.ScopeForProject(membership)
	if err != nil {
		t.Fatalf("scope: %v", err)
	}
	dispatcher := newTestDispatcher(t, &stubMutator{}, &stubPromoter{})
	s := openSession(membership)
	display := newStubDisplay(FilterChanged{Scope: scope})

	if err := dispatcher.Run(context.Background(), s, display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(display.errs) != 0 {
		t.Fatalf("no errors expected, got %v", display.errs)
	}
	if s.Filter.Kind != search.ScopeKindSpecificProject || s.Filter.ProjectID != membership.ProjectID {
		t.Fatalf("filter not applied: %+v", s.Filter)
	}
}

func TestDispatcherSurfacesServiceErrors(t *testing.T) {
	mutator := &stubMutator{err: pkgerrors.New(pkgerrors.CodeForbidden, "role cannot edit terms in this project")}
	dispatcher := newTestDispatcher(t, mutator, &stubPromoter{})
	display := newStubDisplay(AddRequested{Key: "FPGA", Definition: "Field Programmable Gate Array"})

	if err := dispatcher.Run(context.Background(), openSession(), display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(display.errs) != 1 || !pkgerrors.Is(display.errs[0], pkgerrors.CodeForbidden) {
		t.Fatalf("expected the service error on the display, got %v", display.errs)
	}
}

func TestDispatcherEndedSessionRefusesIntents(t *testing.T) {
	mutator := &stubMutator{}
	dispatcher := newTestDispatcher(t, mutator, &stubPromoter{})
	s := openSession()
	now := time.Now().UTC()
	s.EndedAt = &now
	display := newStubDisplay(AddRequested{Key: "FPGA", Definition: "Field Programmable Gate Array"})

	if err := dispatcher.Run(context.Background(), s, display); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(mutator.adds) != 0 {
		t.Fatal("an ended session must not mutate the glossary")
	}
	if len(display.errs) != 1 || !pkgerrors.Is(display.errs[0], pkgerrors.CodeValidation) {
		t.Fatalf("expected a validation error on the display, got %v", display.errs)
	}
}

func TestDispatcherStopsOnContextCancel(t *testing.T) {
	dispatcher := newTestDispatcher(t, &stubMutator{}, &stubPromoter{})
	display := &stubDisplay{intents: make(chan Intent)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := dispatcher.Run(ctx, openSession(), display); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
