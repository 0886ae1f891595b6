package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"hoteldir/internal/adapters/observability"
	"hoteldir/internal/domain"
)

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Generate(u domain.User) (string, error)
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenIssuer
}

func NewAuthService(users domain.UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateCredentials applies the shared username/password/email rules.
func validateCredentials(username, password, email string) error {
	if len(username) < 3 || len(username) > 50 {
		return domain.Invalid("username must be between 3 and 50 characters")
	}
	if len(password) < 6 {
		return domain.Invalid("password must be at least 6 characters long")
	}
	if !emailRe.MatchString(email) {
		return domain.Invalid("please provide a valid email address")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Register creates a traveler account. Password is stored as a bcrypt hash
// and never returned.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return domain.User{}, &domain.ValidationError{Msg: "username, password, and email are required"}
	}
	if err := validateCredentials(username, password, email); err != nil {
		return domain.User{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleTraveler,
	})
	if err != nil {
		observability.ObserveAuth("register_fail")
		return domain.User{}, err
	}
	observability.ObserveAuth("register_ok")
	return u, nil
}

type LoginResult struct {
	Token string
	User  domain.User
}

// Login verifies credentials and issues a signed identity token.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, &domain.ValidationError{Msg: "username and password are required"}
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveAuth("login_fail")
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		observability.ObserveAuth("login_fail")
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		return LoginResult{}, err
	}
	observability.ObserveAuth("login_ok")
	return LoginResult{Token: token, User: u}, nil
}
