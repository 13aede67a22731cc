package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserBlocked       = errors.New("user is blocked")
	ErrBadSecret         = errors.New("invalid secret")
	ErrForbidden         = errors.New("access forbidden")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownCategory   = errors.New("unknown category")
)

// ValidationError names the required fields missing from a create request.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// CapacityError reports that a category's active set is at its limit.
type CapacityError struct {
	Category Category
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("category %q is full (limit %d)", e.Category, e.Limit)
}

// LockedOutError rejects a login attempt before any secret comparison.
// RemainingSeconds is the whole seconds left in the lockout window.
type LockedOutError struct {
	RemainingSeconds int
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("login locked, %d seconds remaining", e.RemainingSeconds)
}
