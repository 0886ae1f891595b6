package app

import (
	"context"
	"fmt"
	"time"

	"hoteldir/internal/domain"
)

// Authorizer answers {role, resource, action} permission checks against the
// static permission table, with a short-TTL cache in front of the store.
// Exact-match only: hotels:write does not imply own_hotels:write.
type Authorizer struct {
	users domain.UserRepository
	cache domain.Cache
	ttl   time.Duration
}

func NewAuthorizer(users domain.UserRepository, cache domain.Cache, ttl time.Duration) *Authorizer {
	return &Authorizer{users: users, cache: cache, ttl: ttl}
}

func (a *Authorizer) Allowed(ctx context.Context, role domain.Role, res domain.Resource, act domain.Action) (bool, error) {
	key := fmt.Sprintf("perm:%s:%s:%s", role, res, act)
	var allowed bool
	if ok, _ := a.cache.Get(ctx, key, &allowed); ok {
		return allowed, nil
	}
	allowed, err := a.users.HasPermission(ctx, role, res, act)
	if err != nil {
		return false, err
	}
	_ = a.cache.Set(ctx, key, allowed, int(a.ttl.Seconds()))
	return allowed, nil
}
