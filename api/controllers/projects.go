package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/api/validators"
	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type permissionResolver interface {
	Resolve(ctx context.Context, userID, projectID uuid.UUID) permissions.Set
}

// ProjectsList returns the caller's project memberships.
func ProjectsList(members membershipLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if members == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "membership repo unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := members.ListUserProjects(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PermissionsShow returns the caller's resolved capability set for a project.
func PermissionsShow(resolver permissionResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if resolver == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "permission resolver unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		projectID, err := validators.RequireQueryUUID(r, "project_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolver.Resolve(ctx, userID, projectID))
	}
}
