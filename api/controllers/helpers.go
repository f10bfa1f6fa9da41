package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/middleware"
	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

type membershipLister interface {
	ListUserProjects(ctx context.Context, userID uuid.UUID) ([]memberships.MembershipWithProject, error)
}

// callerID returns the authenticated user from the request context.
func callerID(ctx context.Context) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// membershipFor finds the caller's active membership in the given project.
func membershipFor(ctx context.Context, lister membershipLister, userID, projectID uuid.UUID) (*memberships.MembershipWithProject, error) {
	list, err := lister.ListUserProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ProjectID == projectID && list[i].IsActive() {
			return &list[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not an active member of that project")
}
