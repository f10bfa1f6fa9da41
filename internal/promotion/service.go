package promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/ccoppo/AcronymLookupTool/internal/memberships"
	"github.com/ccoppo/AcronymLookupTool/internal/permissions"
	"github.com/ccoppo/AcronymLookupTool/internal/terms"
	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
	"github.com/ccoppo/AcronymLookupTool/pkg/metrics"
)

type capabilityResolver interface {
	Resolve(ctx context.Context, userID, projectID uuid.UUID) permissions.Set
}

type requestStore interface {
	Create(ctx context.Context, request *models.TermRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.TermRequest, error)
	FindPendingByKey(ctx context.Context, projectID uuid.UUID, kind enums.RequestKind, key string) (*models.TermRequest, error)
	ListPending(ctx context.Context, projectID uuid.UUID) ([]models.TermRequest, error)
	MarkReviewed(ctx context.Context, id uuid.UUID, status enums.RequestStatus, reviewerID uuid.UUID, note string) error
}

// ServiceParams groups dependencies for the promotion service.
type ServiceParams struct {
	Personal terms.Store
	Project  terms.Store
	Requests requestStore
	Resolver capabilityResolver
	Metrics  *metrics.LookupMetrics
	Logger   *logger.Logger
}

// Service moves personal terms into project glossaries and reviews the change
// requests that path produces for members without direct-write capability.
type Service interface {
	Promote(ctx context.Context, userID uuid.UUID, key string, membership memberships.MembershipWithProject) (PromoteOutcome, error)
	ListPending(ctx context.Context, userID, projectID uuid.UUID) ([]RequestDTO, error)
	Approve(ctx context.Context, reviewerID, requestID uuid.UUID, note string) (RequestDTO, error)
	Reject(ctx context.Context, reviewerID, requestID uuid.UUID, note string) (RequestDTO, error)
}

type service struct {
	personal terms.Store
	project  terms.Store
	requests requestStore
	resolver capabilityResolver
	metrics  *metrics.LookupMetrics
	logg     *logger.Logger
}

// NewService builds a promotion service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Personal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "personal store is required")
	}
	if params.Project == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project store is required")
	}
	if params.Requests == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request store is required")
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

// Promote copies a personal term into the membership's project glossary. The
// personal copy stays untouched: the owner keeps their private record even
// after the project adopts it. Members without direct-add capability get a
// pending request instead of an immediate copy.
func (s *service) Promote(ctx context.Context, userID uuid.UUID, key string, membership memberships.MembershipWithProject) (PromoteOutcome, error) {
	if !membership.IsActive() {
		return PromoteOutcome{}, pkgerrors.New(pkgerrors.CodeForbidden, "membership is not active")
	}

	cleaned := terms.CleanKey(key)
	if cleaned == "" {
		return PromoteOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "term key is required")
	}

	record, err := s.personal.FindByKey(ctx, cleaned, terms.Owner{UserID: userID})
	if err != nil {
		return PromoteOutcome{}, err
	}
	if record == nil {
		return PromoteOutcome{}, pkgerrors.New(pkgerrors.CodeNotFound, "no personal term with that key")
	}

	set := s.resolver.Resolve(ctx, userID, membership.ProjectID)
	switch {
	case set.AddDirectly:
		owner := terms.Owner{UserID: userID, ProjectID: membership.ProjectID}
		if err := s.project.Add(ctx, *record, owner); err != nil {
			return PromoteOutcome{}, err
		}
		s.metrics.IncMutation("promote")
		s.info(ctx, userID, membership.ProjectID, "term promoted directly")
		return PromoteOutcome{Promoted: true}, nil

	case set.RequestAdd:
		pending, err := s.requests.FindPendingByKey(ctx, membership.ProjectID, enums.RequestKindPromote, record.Key)
		if err != nil {
			return PromoteOutcome{}, err
		}
		if pending != nil {
			return PromoteOutcome{}, pkgerrors.New(pkgerrors.CodeConflict, "a promotion request for this term is already pending")
		}

		request := models.TermRequest{
			Kind:              enums.RequestKindPromote,
			ProjectID:         membership.ProjectID,
			Key:               record.Key,
			Definition:        record.Definition,
			Category:          record.Category,
			Notes:             record.Notes,
			RequestedByUserID: userID,
			Status:            enums.RequestStatusPending,
		}
		if err := s.requests.Create(ctx, &request); err != nil {
			return PromoteOutcome{}, err
		}
		s.metrics.IncMutation("promote_request")
		s.info(ctx, userID, membership.ProjectID, "promotion request filed")

		dto := toRequestDTO(request)
		return PromoteOutcome{Request: &dto}, nil
	}

	return PromoteOutcome{}, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot add or request terms in this project")
}

// ListPending returns the project's open requests for a reviewer.
func (s *service) ListPending(ctx context.Context, userID, projectID uuid.UUID) ([]RequestDTO, error) {
	set := s.resolver.Resolve(ctx, userID, projectID)
	if !set.CanApprove() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot review requests in this project")
	}
	rows, err := s.requests.ListPending(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toRequestDTOs(rows), nil
}

// Approve applies the requested change to the project glossary and closes the
// request. Applying happens before the verdict is recorded, so a failed apply
// leaves the request pending for a retry.
func (s *service) Approve(ctx context.Context, reviewerID, requestID uuid.UUID, note string) (RequestDTO, error) {
	request, err := s.loadForReview(ctx, reviewerID, requestID)
	if err != nil {
		return RequestDTO{}, err
	}

	if err := s.apply(ctx, reviewerID, request); err != nil {
		return RequestDTO{}, err
	}
	if err := s.requests.MarkReviewed(ctx, request.ID, enums.RequestStatusApproved, reviewerID, note); err != nil {
		return RequestDTO{}, err
	}
	s.metrics.IncMutation("request_approve")
	s.info(ctx, reviewerID, request.ProjectID, "request approved")

	updated, err := s.requests.FindByID(ctx, request.ID)
	if err != nil || updated == nil {
		request.Status = enums.RequestStatusApproved
		return toRequestDTO(*request), nil
	}
	return toRequestDTO(*updated), nil
}

// Reject closes the request without touching the glossary.
func (s *service) Reject(ctx context.Context, reviewerID, requestID uuid.UUID, note string) (RequestDTO, error) {
	request, err := s.loadForReview(ctx, reviewerID, requestID)
	if err != nil {
		return RequestDTO{}, err
	}

	if err := s.requests.MarkReviewed(ctx, request.ID, enums.RequestStatusRejected, reviewerID, note); err != nil {
		return RequestDTO{}, err
	}
	s.metrics.IncMutation("request_reject")
	s.info(ctx, reviewerID, request.ProjectID, "request rejected")

	request.Status = enums.RequestStatusRejected
	request.ReviewNote = note
	return toRequestDTO(*request), nil
}

// loadForReview fetches the request and checks the reviewer may decide it.
func (s *service) loadForReview(ctx context.Context, reviewerID, requestID uuid.UUID) (*models.TermRequest, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no such request")
	}

	set := s.resolver.Resolve(ctx, reviewerID, request.ProjectID)
	if !set.CanApprove() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot review requests in this project")
	}
	if request.Status != enums.RequestStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "request has already been reviewed")
	}
	return request, nil
}

// apply performs the glossary mutation a request describes, attributed to the
// approving reviewer.
func (s *service) apply(ctx context.Context, reviewerID uuid.UUID, request *models.TermRequest) error {
	owner := terms.Owner{UserID: reviewerID, ProjectID: request.ProjectID}

	switch request.Kind {
	case enums.RequestKindPromote, enums.RequestKindAdd:
		record, err := terms.NewRecord(request.Key, request.Definition, request.Category, request.Notes, terms.ProjectSource(""))
		if err != nil {
			return err
		}
		if err := s.project.Add(ctx, record, owner); err != nil {
			if pkgerrors.Is(err, pkgerrors.CodeConflict) && s.alreadyApplied(ctx, request, owner) {
				return nil
			}
			return err
		}
		return nil

	case enums.RequestKindEdit:
		update := terms.Update{
			Definition: request.Definition,
			Category:   request.Category,
			Notes:      request.Notes,
			Reason:     "approved request " + request.ID.String(),
		}
		_, err := s.project.Update(ctx, request.Key, update, owner)
		return err

	case enums.RequestKindDelete:
		if err := s.project.SoftDelete(ctx, request.Key, owner, "approved request "+request.ID.String()); err != nil {
			if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
				// The term is already gone, which is the state the request
				// asked for. A verdict write that failed after the delete
				// lands here on retry.
				return nil
			}
			return err
		}
		return nil
	}

	return pkgerrors.New(pkgerrors.CodeValidation, "unknown request kind")
}

// alreadyApplied reports whether the request's content is already live in the
// project glossary. Approve writes the glossary before the verdict, so a
// failed verdict write leaves a pending request whose term exists; the retry
// must not read that as a genuine key clash.
func (s *service) alreadyApplied(ctx context.Context, request *models.TermRequest, owner terms.Owner) bool {
	existing, err := s.project.FindByKey(ctx, request.Key, owner)
	if err != nil || existing == nil {
		return false
	}
	return existing.Definition == request.Definition
}

func (s *service) info(ctx context.Context, userID, projectID uuid.UUID, msg string) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithUserID(ctx, userID.String())
	ctx = s.logg.WithProjectID(ctx, projectID.String())
	s.logg.Info(ctx, msg)
}
