package permissions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ccoppo/AcronymLookupTool/pkg/db/models"
	"github.com/ccoppo/AcronymLookupTool/pkg/enums"
	"github.com/ccoppo/AcronymLookupTool/pkg/logger"
)

const cacheSize = 256

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type membershipLookup interface {
	GetMembership(ctx context.Context, userID, projectID uuid.UUID) (*models.ProjectMember, error)
}

type cacheKey struct {
	userID    uuid.UUID
	projectID uuid.UUID
}

// Resolver computes the capability set for (user, project) pairs.
//
// Every failure path resolves to NoAccess: callers cannot distinguish "no
// permission" from "lookup failed", which is the point.
type Resolver struct {
	users   userLookup
	members membershipLookup
	logg    *logger.Logger
	cache   *lru.Cache[cacheKey, Set]
}

// NewResolver builds a resolver over the user and membership lookups.
func NewResolver(users userLookup, members membershipLookup, logg *logger.Logger) (*Resolver, error) {
	if users == nil {
		return nil, fmt.Errorf("user lookup required")
	}
	if members == nil {
		return nil, fmt.Errorf("membership lookup required")
	}
	cache, err := lru.New[cacheKey, Set](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("building permission cache: %w", err)
	}
	return &Resolver{users: users, members: members, logg: logg, cache: cache}, nil
}

// Resolve returns the capability set for the user on the project. It never
// returns an error; anything that goes wrong fails closed.
func (r *Resolver) Resolve(ctx context.Context, userID, projectID uuid.UUID) Set {
	key := cacheKey{userID: userID, projectID: projectID}
	if set, ok := r.cache.Get(key); ok {
		return set
	}

	set := r.resolve(ctx, userID, projectID)
	r.cache.Add(key, set)
	return set
}

func (r *Resolver) resolve(ctx context.Context, userID, projectID uuid.UUID) Set {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		r.warn(ctx, "permission user lookup failed", err)
		return NoAccess()
	}
	if user == nil || !user.IsActive {
		return NoAccess()
	}
	if user.IsSystemAdmin() {
		return AllCapabilities()
	}

	membership, err := r.members.GetMembership(ctx, userID, projectID)
	if err != nil {
		r.warn(ctx, "permission membership lookup failed", err)
		return NoAccess()
	}
	if membership == nil || membership.Status != enums.MembershipStatusActive {
		return NoAccess()
	}
	return forRole(membership.Role)
}

// Invalidate drops every cached entry for the user. The session layer calls
// this on project switch so a stale grant never outlives the switch.
func (r *Resolver) Invalidate(userID uuid.UUID) {
	for _, key := range r.cache.Keys() {
		if key.userID == userID {
			r.cache.Remove(key)
		}
	}
}

func (r *Resolver) warn(ctx context.Context, msg string, err error) {
	if r.logg == nil {
		return
	}
	ctx = r.logg.WithField(ctx, "error", err.Error())
	r.logg.Warn(ctx, msg)
}
