package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

// UserHeader names the caller on every authenticated route. The service
// binds to the loopback for a single desktop user, so identity is a plain
// header rather than a token exchange.
const UserHeader = "X-Acro-User"

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Identity resolves the user header against the users table and injects the
// user id into the request context. Unknown or inactive users are rejected.
func Identity(users UserFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if users == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user lookup unavailable"))
				return
			}

			raw := r.Header.Get(UserHeader)
			if raw == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user header missing"))
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
				return
			}

			user, err := users.FindByID(ctx, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user"))
				return
			}
			if user == nil || !user.IsActive {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user"))
				return
			}

			ctx = WithUserID(ctx, user.ID.String())
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
