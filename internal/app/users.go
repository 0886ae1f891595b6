package app

import (
	"context"
	"errors"
	"strings"

	"hoteldir/internal/domain"
)

// UserService covers the admin-only user management surface.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

type UsersResult struct {
	Items []domain.User
	Page  domain.PageInfo
}

func (s *UserService) List(ctx context.Context, search string, q domain.PageQuery) (UsersResult, error) {
	q = q.Clamp(50)
	page, err := s.users.ListUsers(ctx, domain.UsersQuery{
		Search: strings.TrimSpace(search),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return UsersResult{}, err
	}
	return UsersResult{Items: page.Items, Page: domain.NewPageInfo(q, page.Total)}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// Create registers a user with an explicit role (admin operation).
func (s *UserService) Create(ctx context.Context, username, password, email, roleName string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" || roleName == "" {
		return domain.User{}, &domain.ValidationError{Msg: "username, password, email, and role are required"}
	}
	if err := validateCredentials(username, password, email); err != nil {
		return domain.User{}, err
	}
	role, ok := domain.ParseRole(roleName)
	if !ok {
		return domain.User{}, domain.Invalid("role must be one of: traveler, hotel_manager, data_operator, admin")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

type UserUpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

func (s *UserService) Update(ctx context.Context, id int64, in UserUpdateInput) (domain.User, error) {
	upd := domain.UserUpdate{}
	if in.Username != nil {
		if len(*in.Username) < 3 || len(*in.Username) > 50 {
			return domain.User{}, domain.Invalid("username must be between 3 and 50 characters")
		}
		upd.Username = in.Username
	}
	if in.Email != nil {
		if !emailRe.MatchString(*in.Email) {
			return domain.User{}, domain.Invalid("please provide a valid email address")
		}
		upd.Email = in.Email
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return domain.User{}, domain.Invalid("password must be at least 6 characters long")
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return domain.User{}, err
		}
		upd.PasswordHash = &hash
	}
	return s.users.UpdateUser(ctx, id, upd)
}

// UpdateRole changes a user's role. An admin may not demote themselves.
func (s *UserService) UpdateRole(ctx context.Context, caller domain.Identity, id int64, roleName string) (domain.User, error) {
	if roleName == "" {
		return domain.User{}, &domain.ValidationError{Msg: "role is required"}
	}
	role, ok := domain.ParseRole(roleName)
	if !ok {
		return domain.User{}, domain.Invalid("role must be one of: traveler, hotel_manager, data_operator, admin")
	}
	if caller.UserID == id && caller.Role == domain.RoleAdmin && role != domain.RoleAdmin {
		return domain.User{}, domain.ErrSelfDemotion
	}
	return s.users.UpdateUserRole(ctx, id, role)
}

// Delete removes a user; self-deletion and deleting an active hotel
// manager are both refused.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity, id int64) (domain.User, error) {
	if caller.UserID == id {
		return domain.User{}, domain.ErrSelfDeletion
	}
	return s.users.DeleteUser(ctx, id)
}

// EnsureAdmin creates the bootstrap admin account when none exists.
// Used by the seeder; the credentials must be rotated after first login.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) (domain.User, bool, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, false, err
	}
	u, err := s.users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}
