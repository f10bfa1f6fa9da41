package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type MembershipChecker interface {
	UserHasRole(ctx context.Context, userID, projectID uuid.UUID, roles ...enums.MemberRole) (bool, error)
}

// RequireProjectRoles filters requests by project membership roles before
// executing the handler. The project id comes from the context, set by
// ProjectContext.
func RequireProjectRoles(checker MembershipChecker, logg *logger.Logger, allowed ...enums.MemberRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if checker == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership checker unavailable"))
				return
			}
			if len(allowed) == 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "allowed roles missing"))
				return
			}

			userID := UserIDFromContext(ctx)
			if userID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
				return
			}

			projectID := ProjectIDFromContext(ctx)
			if projectID == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "project context required"))
				return
			}

			uid, err := uuid.Parse(userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
				return
			}

			pid, err := uuid.Parse(projectID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id"))
				return
			}

			ok, err := checker.UserHasRole(ctx, uid, pid, allowed...)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check membership role"))
				return
			}
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient project role"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ProjectHeader carries the target project on routes whose path has no
// project parameter.
const ProjectHeader = "X-Acro-Project"

// ProjectContext lifts an optional project id from the query string or the
// project header into the context so role middleware and handlers agree on
// the target project.
func ProjectContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			raw := r.URL.Query().Get("project_id")
			if raw == "" {
				raw = r.Header.Get(ProjectHeader)
			}
			if raw != "" {
				if _, err := uuid.Parse(raw); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id"))
					return
				}
				ctx = WithProjectID(ctx, raw)
				if logg != nil {
					ctx = logg.WithProjectID(ctx, raw)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
