package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type termMutator interface {
	Add(ctx context.Context, userID uuid.UUID, input terms.AddInput) (terms.MutationOutcome, error)
	Edit(ctx context.Context, userID uuid.UUID, key string, input terms.EditInput) (terms.MutationOutcome, error)
	Delete(ctx context.Context, userID uuid.UUID, key string, input terms.DeleteInput) (terms.MutationOutcome, error)
}

type termPromoter interface {
	Promote(ctx context.Context, userID uuid.UUID, key string, membership memberships.MembershipWithProject) (promotion.PromoteOutcome, error)
}

// Dispatcher drains a display surface's intents and turns each one into the
// matching glossary call. Anything that goes wrong flows back to the surface
// through DisplayError; the loop itself only stops when the surface closes
// its intent channel or the context ends.
type Dispatcher struct {
	manager  *Manager
	terms    termMutator
	promoter termPromoter
	logg     *logger.Logger
}

// NewDispatcher builds a dispatcher with the required dependencies.
func NewDispatcher(manager *Manager, mutator termMutator, promoter termPromoter, logg *logger.Logger) (*Dispatcher, error) {
	if manager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if mutator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "terms service is required")
	}
	if promoter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion service is required")
	}
	return &Dispatcher{manager: manager, terms: mutator, promoter: promoter, logg: logg}, nil
}

// Run serves one session against one display surface. It returns nil when
// the surface closes its intent channel, or the context error on
// cancellation.
func (d *Dispatcher) Run(ctx context.Context, s *Session, display DisplayPort) error {
	if display == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "display port is required")
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case intent, ok := <-display.Intents():
			if !ok {
				return nil
			}
			if err := d.dispatch(ctx, s, intent); err != nil {
				if derr := display.DisplayError(ctx, err); derr != nil && d.logg != nil {
					d.logg.Warn(ctx, "display surface rejected an error")
				}
			}
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, s *Session, intent Intent) error {
	if !s.Active() {
		return pkgerrors.New(pkgerrors.CodeValidation, "session has ended")
	}

	switch in := intent.(type) {
	case AddRequested:
		outcome, err := d.terms.Add(ctx, s.UserID, terms.AddInput{
			Key:        in.Key,
			Definition: in.Definition,
			Category:   in.Category,
			Notes:      in.Notes,
			ProjectID:  in.ProjectID,
		})
		d.noteQueued(ctx, s, outcome)
		return err

	case EditRequested:
		outcome, err := d.terms.Edit(ctx, s.UserID, in.Key, terms.EditInput{
			Definition: in.Update.Definition,
			Category:   in.Update.Category,
			Notes:      in.Update.Notes,
			Reason:     in.Update.Reason,
			ProjectID:  in.ProjectID,
		})
		d.noteQueued(ctx, s, outcome)
		return err

	case DeleteRequested:
		outcome, err := d.terms.Delete(ctx, s.UserID, in.Key, terms.DeleteInput{
			Reason:    in.Reason,
			ProjectID: in.ProjectID,
		})
		d.noteQueued(ctx, s, outcome)
		return err

	case PromoteRequested:
		membership := s.membershipFor(in.ProjectID)
		if membership == nil {
			return pkgerrors.New(pkgerrors.CodeForbidden, "not an active member of that project")
		}
		_, err := d.promoter.Promote(ctx, s.UserID, in.Key, *membership)
		return err

	case FilterChanged:
		return d.manager.SetFilter(s, in.Scope)
	}

	return pkgerrors.New(pkgerrors.CodeValidation, "unknown intent")
}

func (d *Dispatcher) noteQueued(ctx context.Context, s *Session, outcome terms.MutationOutcome) {
	if outcome.Applied || outcome.Request == nil || d.logg == nil {
		return
	}
	ctx = d.logg.WithUserID(ctx, s.UserID.String())
	d.logg.Info(ctx, "change request queued")
}
