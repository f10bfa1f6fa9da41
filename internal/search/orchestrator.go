package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
)

type membershipLister interface {
	ListUserProjects(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithProject, error)
}

// Orchestrator runs a search across the personal and project glossaries and
// merges the outcome with personal-first precedence.
type Orchestrator struct {
	personal terms.Store
	project  terms.Store
	members  membershipLister
	metrics  *metrics.LookupMetrics
	logg     *logger.Logger
}

// NewOrchestrator wires the orchestrator over its store adapters.
func NewOrchestrator(personal, project terms.Store, members membershipLister, m *metrics.LookupMetrics, logg *logger.Logger) (*Orchestrator, error) {
	if personal == nil {
		return nil, fmt.Errorf("personal store required")
	}
	if project == nil {
		return nil, fmt.Errorf("project store required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership lister required")
	}
	return &Orchestrator{personal: personal, project: project, members: members, metrics: m, logg: logg}, nil
}

// Search performs an exact-match lookup within the given scope.
//
// A blank or unusable term returns an empty result without touching any
// store. Adapter failures never mask another adapter's results: the error is
// non-nil only when every consulted store failed and there is nothing to show.
func (o *Orchestrator) Search(ctx context.Context, term string, scope Scope, userID uuid.UUID) (Result, error) {
	result := Result{Term: term, Scope: scope}

	key := terms.CleanKey(term)
	if key == "" {
		return result, nil
	}
	o.metrics.IncSearch(string(scope.Kind))

	var errs error
	consulted := 0

	if scope.Kind == ScopeKindAll || scope.Kind == ScopeKindPersonalOnly {
		consulted++
		record, err := o.personal.FindByKey(ctx, key, terms.Owner{UserID: userID})
		if err != nil {
			errs = multierr.Append(errs, err)
			o.storeFailed(ctx, "personal", err)
		} else if record != nil {
			result.append(*record)
		}
	}

	if scope.Kind == ScopeKindAll || scope.Kind == ScopeKindSpecificProject {
		projectIDs, err := o.projectsForScope(ctx, scope, userID)
		if err != nil {
			errs = multierr.Append(errs, err)
			o.storeFailed(ctx, "memberships", err)
		}
		for _, projectID := range projectIDs {
			consulted++
			record, err := o.project.FindByKey(ctx, key, terms.Owner{UserID: userID, ProjectID: projectID})
			if err != nil {
				errs = multierr.Append(errs, err)
				o.storeFailed(ctx, "project", err)
				continue
			}
			if record != nil {
				result.append(*record)
			}
		}
	}

	if result.Empty() {
		o.metrics.IncMiss()
		if errs != nil && consulted > 0 {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "search failed")
		}
	}
	return result, nil
}

// Browse performs the explicit substring search within the given scope, with
// the same precedence order and partial-failure behavior as Search.
func (o *Orchestrator) Browse(ctx context.Context, fragment string, scope Scope, userID uuid.UUID) (Result, error) {
	result := Result{Term: fragment, Scope: scope}

	cleaned := terms.CleanKey(fragment)
	if cleaned == "" {
		return result, nil
	}
	o.metrics.IncSearch(string(scope.Kind))

	var errs error
	consulted := 0

	if scope.Kind == ScopeKindAll || scope.Kind == ScopeKindPersonalOnly {
		consulted++
		records, err := o.personal.SearchBySubstring(ctx, cleaned, terms.Owner{UserID: userID})
		if err != nil {
			errs = multierr.Append(errs, err)
			o.storeFailed(ctx, "personal", err)
		}
		for _, record := range records {
			result.append(record)
		}
	}

	if scope.Kind == ScopeKindAll || scope.Kind == ScopeKindSpecificProject {
		projectIDs, err := o.projectsForScope(ctx, scope, userID)
		if err != nil {
			errs = multierr.Append(errs, err)
			o.storeFailed(ctx, "memberships", err)
		}
		for _, projectID := range projectIDs {
			consulted++
			records, err := o.project.SearchBySubstring(ctx, cleaned, terms.Owner{UserID: userID, ProjectID: projectID})
			if err != nil {
				errs = multierr.Append(errs, err)
				o.storeFailed(ctx, "project", err)
				continue
			}
			for _, record := range records {
				result.append(record)
			}
		}
	}

	if result.Empty() {
		o.metrics.IncMiss()
		if errs != nil && consulted > 0 {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "search failed")
		}
	}
	return result, nil
}

// projectsForScope resolves which project glossaries the scope touches, in
// stable membership-list order.
func (o *Orchestrator) projectsForScope(ctx context.Context, scope Scope, userID uuid.UUID) ([]uuid.UUID, error) {
	if scope.Kind == ScopeKindSpecificProject {
		return []uuid.UUID{scope.ProjectID}, nil
	}

	list, err := o.members.ListUserProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(list))
	for _, m := range list {
		if m.IsActive() {
			ids = append(ids, m.ProjectID)
		}
	}
	return ids, nil
}

func (o *Orchestrator) storeFailed(ctx context.Context, store string, err error) {
	o.metrics.IncStoreFailure(store)
	if o.logg != nil {
		o.logg.Error(o.logg.WithField(ctx, "store", store), "store call failed", err)
	}
}
