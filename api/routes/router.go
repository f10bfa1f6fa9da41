package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ccoppo/AcronymLookupTool/api/controllers"
	"github.com/ccoppo/AcronymLookupTool/api/middleware"
	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/search"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	"github.com/ccoppo/AcronymLookupTool/pkg/config"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       dbPinger
	Users    middleware.UserFinder
	Members  *memberships.Repository
	Resolver permissionResolver
	Search   *search.Orchestrator
	Terms    terms.Service
	Requests promotion.Service
}

type permissionResolver interface {
	Resolve(ctx context.Context, userID, projectID uuid.UUID) permissions.Set
}

// NewRouter wires the HTTP API. Everything under /v1 requires the identity
// header; approve/reject additionally require an admin or owner role in the
// target project.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.HealthLive(deps.Config))
	r.Get("/readyz", controllers.HealthReady(deps.Config, deps.Logger, deps.DB))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Identity(deps.Users, deps.Logger))

		r.Get("/search", controllers.Search(deps.Search, deps.Members, deps.Logger))
		r.Get("/projects", controllers.ProjectsList(deps.Members, deps.Logger))
		r.Get("/permissions", controllers.PermissionsShow(deps.Resolver, deps.Logger))

		r.Route("/terms", func(r chi.Router) {
			r.Post("/", controllers.TermAdd(deps.Terms, deps.Logger))
			r.Patch("/{key}", controllers.TermEdit(deps.Terms, deps.Logger))
			r.Delete("/{key}", controllers.TermDelete(deps.Terms, deps.Logger))
			r.Post("/{key}/promote", controllers.TermPromote(deps.Requests, deps.Members, deps.Logger))
		})

		r.Route("/requests", func(r chi.Router) {
			// Reviewer listing is double-gated: the role middleware fails
			// fast on the project from the query, and the service still
			// re-checks the resolved capability set.
			r.With(
				middleware.ProjectContext(deps.Logger),
				middleware.RequireProjectRoles(deps.Members, deps.Logger, enums.MemberRoleAdmin, enums.MemberRoleOwner),
			).Get("/", controllers.RequestsList(deps.Requests, deps.Logger))

			// Review routes carry the project in the X-Acro-Project header;
			// the service re-checks the approve capability after the role
			// middleware.
			r.Group(func(r chi.Router) {
				r.Use(
					middleware.ProjectContext(deps.Logger),
					middleware.RequireProjectRoles(deps.Members, deps.Logger, enums.MemberRoleAdmin, enums.MemberRoleOwner),
				)
				r.Post("/{id}/approve", controllers.RequestApprove(deps.Requests, deps.Logger))
				r.Post("/{id}/reject", controllers.RequestReject(deps.Requests, deps.Logger))
			})
		})
	})

	return r
}
