package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidManager     = errors.New("manager not found or doesn't have manager role")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token invalid or malformed")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfDemotion       = errors.New("administrators cannot change their own role")
	ErrSelfDeletion       = errors.New("you cannot delete your own account")
)

// ValidationError reports missing or malformed input. Fields lists the
// offending field names by their wire names when the problem is absence.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "required fields: " + strings.Join(e.Fields, ", ")
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ManagedHotelsError blocks deleting a user who still manages hotels.
type ManagedHotelsError struct{ Count int }

func (e *ManagedHotelsError) Error() string {
	return fmt.Sprintf("user is currently managing %d hotels, please reassign these hotels first", e.Count)
}
