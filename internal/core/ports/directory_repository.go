package ports

import (
	"context"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// DirectoryRepository persists user identity records. Usernames are unique
// with case-sensitive exact matching; Insert fails with
// domain.ErrDuplicateUsername on a collision.
type DirectoryRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	// FindByUsername returns the user or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users in creation order.
	List(ctx context.Context) ([]*domain.User, error)
	// Update rewrites the mutable fields (blocked flag, role) of an existing
	// user, matched by username. Returns domain.ErrUserNotFound when absent.
	Update(ctx context.Context, user *domain.User) error
}
