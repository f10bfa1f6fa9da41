package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/api/validators"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type searcher interface {
	Search(ctx context.Context, term string, scope search.Scope, userID uuid.UUID) (search.Result, error)
	Browse(ctx context.Context, fragment string, scope search.Scope, userID uuid.UUID) (search.Result, error)
}

type searchResponse struct {
	search.Result
	Found bool `json:"found"`
}

// Search runs an exact lookup, or a substring browse with match=substring.
// The scope query narrows to the personal glossary or one project.
func Search(svc searcher, members membershipLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		term := validators.ParseQueryString(r, "q", "")
		if term == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required"))
			return
		}

		scope, err := scopeFromQuery(r, members, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			ctx = logg.WithSearchTerm(ctx, term)
		}

		var result search.Result
		switch validators.ParseQueryString(r, "match", "exact") {
		case "exact":
			result, err = svc.Search(ctx, term, scope, userID)
		case "substring":
			result, err = svc.Browse(ctx, term, scope, userID)
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "match must be exact or substring"))
			return
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, searchResponse{Result: result, Found: !result.Empty()})
	}
}

func scopeFromQuery(r *http.Request, members membershipLister, userID uuid.UUID) (search.Scope, error) {
	switch validators.ParseQueryString(r, "scope", "all") {
	case "all":
		return search.ScopeAll(), nil
	case "personal":
		return search.ScopePersonal(), nil
	case "project":
		projectID, err := validators.RequireQueryUUID(r, "project_id")
		if err != nil {
			return search.Scope{}, err
		}
		membership, err := membershipFor(r.Context(), members, userID, projectID)
		if err != nil {
			return search.Scope{}, err
		}
		return search.ScopeForProject(*membership)
	}
	return search.Scope{}, pkgerrors.New(pkgerrors.CodeValidation, "scope must be all, personal, or project")
}
