package ports

import (
	"context"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// CreateUserInput carries a "manage roles" user creation request. Secret is
// accepted for form compatibility but never stored: authentication only ever
// checks the role-level shared secret.
type CreateUserInput struct {
	Username string
	Role     domain.Role
	Secret   string
	// Actor is the role performing the operation.
	Actor domain.Role
}

// DirectoryService manages user records, enforcing the authorization matrix
// and its management sub-rules on every mutation.
type DirectoryService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// SetBlocked blocks or unblocks a user. Blocking either privileged
	// identity additionally requires manage-privileged-users.
	SetBlocked(ctx context.Context, actor domain.Role, username string, blocked bool) (*domain.User, error)
	// ReassignRole rewrites a user's role. Only manage-privileged-users
	// holders may reassign roles.
	ReassignRole(ctx context.Context, actor domain.Role, username string, newRole domain.Role) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Role) ([]*domain.User, error)
}
