package app_test

import (
	"context"
	"strings"

	"hoteldir/internal/app"
	"hoteldir/internal/domain"
)

// ---- fakes shared by the service tests ----

type fakeUsers struct {
	byID   map[int64]domain.User
	nextID int64
	grants map[string]bool // "role:resource:action"
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]domain.User{}, grants: map[string]bool{}}
}

func (f *fakeUsers) grant(role domain.Role, res domain.Resource, act domain.Action) {
	f.grants[string(role)+":"+string(res)+":"+string(act)] = true
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	for _, cur := range f.byID {
		if cur.Username == u.Username || cur.Email == u.Email {
			return domain.User{}, domain.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) ListUsers(ctx context.Context, q domain.UsersQuery) (domain.UsersPage, error) {
	var items []domain.User
	for _, u := range f.byID {
		if q.Search == "" || strings.Contains(u.Username, q.Search) || strings.Contains(u.Email, q.Search) {
			items = append(items, u)
		}
	}
	return domain.UsersPage{Items: items, Total: len(items)}, nil
}

func (f *fakeUsers) UpdateUser(ctx context.Context, id int64, upd domain.UserUpdate) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) UpdateUserRole(ctx context.Context, id int64, role domain.Role) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	u.Role = role
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) DeleteUser(ctx context.Context, id int64) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	delete(f.byID, id)
	return u, nil
}

func (f *fakeUsers) HasPermission(ctx context.Context, role domain.Role, res domain.Resource, act domain.Action) (bool, error) {
	return f.grants[string(role)+":"+string(res)+":"+string(act)], nil
}

type fakeCache struct {
	store map[string]any
	sets  int
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.HotelView:
		*d = v.(domain.HotelView)
	case *app.HotelsResult:
		*d = v.(app.HotelsResult)
	case *bool:
		*d = v.(bool)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels++
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Generate(u domain.User) (string, error) { return "token-" + u.Username, nil }
