package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/api/responses"
	"github.com/ccoppo/AcronymLookupTool/api/validators"
	"github.com/ccoppo/AcronymLookupTool/internal/promotion"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

type addTermPayload struct {
	Key        string  `json:"key" validate:"required,max=100"`
	Definition string  `json:"definition" validate:"required,max=2000"`
	Category   string  `json:"category" validate:"max=200"`
	Notes      string  `json:"notes" validate:"max=2000"`
	ProjectID  *string `json:"project_id" validate:"omitempty,uuid"`
}

type editTermPayload struct {
	Definition string  `json:"definition" validate:"required,max=2000"`
	Category   string  `json:"category" validate:"max=200"`
	Notes      string  `json:"notes" validate:"max=2000"`
	Reason     string  `json:"reason" validate:"max=500"`
	ProjectID  *string `json:"project_id" validate:"omitempty,uuid"`
}

type deleteTermPayload struct {
	Reason    string  `json:"reason" validate:"max=500"`
	ProjectID *string `json:"project_id" validate:"omitempty,uuid"`
}

type promoteTermPayload struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
}

func parseOptionalProject(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id")
	}
	return &id, nil
}

// TermAdd creates a term in the personal glossary or, with project_id, in a
// project.
func TermAdd(svc terms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "terms service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload addTermPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		projectID, err := parseOptionalProject(payload.ProjectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.Add(ctx, userID, terms.AddInput{
			Key:        payload.Key,
			Definition: payload.Definition,
			Category:   payload.Category,
			Notes:      payload.Notes,
			ProjectID:  projectID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusCreated
		if !outcome.Applied {
			status = http.StatusAccepted
		}
		responses.WriteSuccessStatus(w, status, outcome)
	}
}

// TermEdit replaces a term's fields.
func TermEdit(svc terms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "terms service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload editTermPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		projectID, err := parseOptionalProject(payload.ProjectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.Edit(ctx, userID, chi.URLParam(r, "key"), terms.EditInput{
			Definition: payload.Definition,
			Category:   payload.Category,
			Notes:      payload.Notes,
			Reason:     payload.Reason,
			ProjectID:  projectID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusOK
		if !outcome.Applied {
			status = http.StatusAccepted
		}
		responses.WriteSuccessStatus(w, status, outcome)
	}
}

// TermDelete soft deletes a term.
func TermDelete(svc terms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "terms service unavailable"))
			return
		}

		userID, err := callerID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload deleteTermPayload
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}

		projectID, err := parseOptionalProject(payload.ProjectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.Delete(ctx, userID, chi.URLParam(r, "key"), terms.DeleteInput{
			Reason:    payload.Reason,
			ProjectID: projectID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusOK
		if !outcome.Applied {
			status = http.StatusAccepted
		}
		responses.WriteSuccessStatus(w, status, outcome)
	}
}

// TermPromote copies a personal term into a project glossary.
func TermPromote(svc promotion.Service, members membershipLister, logg *logger.Logger) http.HandlerFunc {
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

		var payload promoteTermPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		projectID, err := uuid.Parse(payload.ProjectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id"))
			return
		}

		membership, err := membershipFor(ctx, members, userID, projectID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		outcome, err := svc.Promote(ctx, userID, chi.URLParam(r, "key"), *membership)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusCreated
		if !outcome.Promoted {
			status = http.StatusAccepted
		}
		responses.WriteSuccessStatus(w, status, outcome)
	}
}
