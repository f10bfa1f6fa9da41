package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/api/validators"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type reviewPayload struct {
	Note string `json:"note" validate:"max=500"`
}

// RequestsList returns the pending change requests for a project.
func RequestsList(svc promotion.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
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

		list, err := svc.ListPending(ctx, userID, projectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// RequestApprove applies and closes a pending request.
func RequestApprove(svc promotion.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
			return
		}

		reviewerID, requestID, note, err := reviewInputs(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Approve(ctx, reviewerID, requestID, note)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// RequestReject closes a pending request without applying it.
func RequestReject(svc promotion.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
			return
		}

		reviewerID, requestID, note, err := reviewInputs(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Reject(ctx, reviewerID, requestID, note)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

func reviewInputs(r *http.Request) (reviewerID, requestID uuid.UUID, note string, err error) {
	reviewerID, err = callerID(r.Context())
	if err != nil {
		return uuid.Nil, uuid.Nil, "", err
	}

	requestID, err = uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request id")
	}

	var payload reviewPayload
	if r.ContentLength > 0 {
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			return uuid.Nil, uuid.Nil, "", err
		}
	}
	return reviewerID, requestID, payload.Note, nil
}
