package terms

import (
	"context"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
)

type capabilityResolver interface {
	Resolve(ctx context.Context, userID, projectID uuid.UUID) permissions.Set
}

type requestFiler interface {
	Create(ctx context.Context, request *models.TermRequest) error
	FindPendingByKey(ctx context.Context, projectID uuid.UUID, kind enums.RequestKind, key string) (*models.TermRequest, error)
}

// AddInput describes a new term. A nil ProjectID targets the caller's
// personal glossary.
type AddInput struct {
	Key        string
	Definition string
	Category   string
	Notes      string
	ProjectID  *uuid.UUID
}

// EditInput carries replacement values for an existing term.
type EditInput struct {
	Definition string
	Category   string
	Notes      string
	Reason     string
	ProjectID  *uuid.UUID
}

// DeleteInput names the term to soft delete.
type DeleteInput struct {
	Reason    string
	ProjectID *uuid.UUID
}

// MutationOutcome is the two-case result of a glossary mutation: either it
// was applied, or it was turned into a pending change request for a member
// who may request but not write.
type MutationOutcome struct {
	Applied bool                `json:"applied"`
	Changed bool                `json:"changed"`
	Request *models.TermRequest `json:"request,omitempty"`
}

// ServiceParams groups dependencies for the terms service.
type ServiceParams struct {
	Personal Store
	Project  Store
	Requests requestFiler
	Resolver capabilityResolver
	Metrics  *metrics.LookupMetrics
	Logger   *logger.Logger
}

// Service applies glossary mutations with the caller's capabilities in
// force. Personal-glossary writes are always allowed for the owner; project
// writes either go through directly or become change requests.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, input AddInput) (MutationOutcome, error)
	Edit(ctx context.Context, userID uuid.UUID, key string, input EditInput) (MutationOutcome, error)
	Delete(ctx context.Context, userID uuid.UUID, key string, input DeleteInput) (MutationOutcome, error)
}

type service struct {
	personal Store
	project  Store
	requests requestFiler
	resolver capabilityResolver
	metrics  *metrics.LookupMetrics
	logg     *logger.Logger
}

// NewService builds a terms service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Personal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "personal store is required")
	}
	if params.Project == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project store is required")
	}
	if params.Requests == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request filer is required")
	}
	if params.Resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "permission resolver is required")
	}
	return &service{
		personal: params.Personal,
		project:  params.Project,
		requests: params.Requests,
		resolver: params.Resolver,
		metrics:  params.Metrics,
		logg:     params.Logger,
	}, nil
}

// Add creates a term, directly or via change request.
func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddInput) (MutationOutcome, error) {
	record, err := NewRecord(input.Key, input.Definition, input.Category, input.Notes, PersonalSource)
	if err != nil {
		return MutationOutcome{}, err
	}

	if input.ProjectID == nil {
		if err := s.personal.Add(ctx, record, Owner{UserID: userID}); err != nil {
			return MutationOutcome{}, err
		}
		s.metrics.IncMutation("add_personal")
		return MutationOutcome{Applied: true, Changed: true}, nil
	}

	projectID := *input.ProjectID
	set := s.resolver.Resolve(ctx, userID, projectID)
	switch {
	case set.AddDirectly:
		if err := s.project.Add(ctx, record, Owner{UserID: userID, ProjectID: projectID}); err != nil {
			return MutationOutcome{}, err
		}
		s.metrics.IncMutation("add_project")
		return MutationOutcome{Applied: true, Changed: true}, nil

	case set.RequestAdd:
		request, err := s.fileRequest(ctx, userID, projectID, enums.RequestKindAdd, record.Key, record.Definition, record.Category, record.Notes)
		if err != nil {
			return MutationOutcome{}, err
		}
		return MutationOutcome{Request: request}, nil
	}

	return MutationOutcome{}, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot add terms in this project")
}

// Edit replaces a term's fields, directly or via change request. A direct
// edit that changes nothing reports Applied with Changed false.
func (s *service) Edit(ctx context.Context, userID uuid.UUID, key string, input EditInput) (MutationOutcome, error) {
	cleaned := CleanKey(key)
	if cleaned == "" {
		return MutationOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "term key is required")
	}
	update := Update{
		Definition: input.Definition,
		Category:   input.Category,
		Notes:      input.Notes,
		Reason:     input.Reason,
	}

	if input.ProjectID == nil {
		changed, err := s.personal.Update(ctx, cleaned, update, Owner{UserID: userID})
		if err != nil {
			return MutationOutcome{}, err
		}
		if changed {
			s.metrics.IncMutation("edit_personal")
		}
		return MutationOutcome{Applied: true, Changed: changed}, nil
	}

	projectID := *input.ProjectID
	set := s.resolver.Resolve(ctx, userID, projectID)
	switch {
	case set.EditDirectly:
		changed, err := s.project.Update(ctx, cleaned, update, Owner{UserID: userID, ProjectID: projectID})
		if err != nil {
			return MutationOutcome{}, err
		}
		if changed {
			s.metrics.IncMutation("edit_project")
		}
		return MutationOutcome{Applied: true, Changed: changed}, nil

	case set.RequestEdit:
		request, err := s.fileRequest(ctx, userID, projectID, enums.RequestKindEdit, cleaned, input.Definition, input.Category, input.Notes)
		if err != nil {
			return MutationOutcome{}, err
		}
		return MutationOutcome{Request: request}, nil
	}

	return MutationOutcome{}, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot edit terms in this project")
}

// Delete soft deletes a term, directly or via change request.
func (s *service) Delete(ctx context.Context, userID uuid.UUID, key string, input DeleteInput) (MutationOutcome, error) {
	cleaned := CleanKey(key)
	if cleaned == "" {
		return MutationOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "term key is required")
	}

	if input.ProjectID == nil {
		if err := s.personal.SoftDelete(ctx, cleaned, Owner{UserID: userID}, input.Reason); err != nil {
			return MutationOutcome{}, err
		}
		s.metrics.IncMutation("delete_personal")
		return MutationOutcome{Applied: true, Changed: true}, nil
	}

	projectID := *input.ProjectID
	set := s.resolver.Resolve(ctx, userID, projectID)
	switch {
	case set.DeleteDirectly:
		if err := s.project.SoftDelete(ctx, cleaned, Owner{UserID: userID, ProjectID: projectID}, input.Reason); err != nil {
			return MutationOutcome{}, err
		}
		s.metrics.IncMutation("delete_project")
		return MutationOutcome{Applied: true, Changed: true}, nil

	case set.RequestDelete:
		request, err := s.fileRequest(ctx, userID, projectID, enums.RequestKindDelete, cleaned, "", "", input.Reason)
		if err != nil {
			return MutationOutcome{}, err
		}
		return MutationOutcome{Request: request}, nil
	}

	return MutationOutcome{}, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot delete terms in this project")
}

func (s *service) fileRequest(ctx context.Context, userID, projectID uuid.UUID, kind enums.RequestKind, key, definition, category, notes string) (*models.TermRequest, error) {
	pending, err := s.requests.FindPendingByKey(ctx, projectID, kind, key)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a matching request is already pending")
	}

	request := models.TermRequest{
		Kind:              kind,
		ProjectID:         projectID,
		Key:               key,
		Definition:        definition,
		Category:          category,
		Notes:             notes,
		RequestedByUserID: userID,
		Status:            enums.RequestStatusPending,
	}
	if err := s.requests.Create(ctx, &request); err != nil {
		return nil, err
	}
	s.metrics.IncMutation("request_" + string(kind))

	if s.logg != nil {
		ctx = s.logg.WithProjectID(ctx, projectID.String())
		s.logg.Info(ctx, "change request filed")
	}
	return &request, nil
}
