package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// DirectoryService manages user records. Every mutation re-checks the
// authorization matrix: manage-users covers ordinary accounts, and the two
// privileged identities additionally require manage-privileged-users.
type DirectoryService struct {
	repo   ports.DirectoryRepository
	logger zerolog.Logger
	now    ports.Clock
}

func NewDirectoryService(repo ports.DirectoryRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, logger: logger, now: time.Now}
}

// CreateUser registers a new identity. The supplied secret is discarded:
// authentication only ever checks the role-level shared secret, so per-user
// secrets are vestigial form data.
func (s *DirectoryService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Actor.Can(domain.CapManageUsers) {
		return nil, domain.ErrForbidden
	}
	if input.Role.Privileged() && !input.Actor.Can(domain.CapManagePrivilegedUsers) {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, &domain.ValidationError{Missing: []string{"username"}}
	}
	if !input.Role.Valid() {
		return nil, domain.ErrUnknownRole
	}

	user := &domain.User{
		Username:  input.Username,
		Role:      input.Role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Str("actor", string(input.Actor)).
		Msg("user created")
	return user, nil
}

// SetBlocked toggles the blocked flag. Blocking or unblocking a privileged
// identity requires manage-privileged-users on top of manage-users.
func (s *DirectoryService) SetBlocked(ctx context.Context, actor domain.Role, username string, blocked bool) (*domain.User, error) {
	if !actor.Can(domain.CapManageUsers) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Role.Privileged() && !actor.Can(domain.CapManagePrivilegedUsers) {
		return nil, domain.ErrForbidden
	}

	user.Blocked = blocked
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", username).
		Bool("blocked", blocked).
		Str("actor", string(actor)).
		Msg("user block flag changed")
	return user, nil
}

// ReassignRole rewrites a user's role. Only manage-privileged-users holders
// may reassign roles, including promoting to a privileged one.
func (s *DirectoryService) ReassignRole(ctx context.Context, actor domain.Role, username string, newRole domain.Role) (*domain.User, error) {
	if !actor.Can(domain.CapManagePrivilegedUsers) {
		return nil, domain.ErrForbidden
	}
	if !newRole.Valid() {
		return nil, domain.ErrUnknownRole
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	user.Role = newRole
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", username).
		Str("role", string(newRole)).
		Str("actor", string(actor)).
		Msg("user role reassigned")
	return user, nil
}

// ListUsers returns the directory in creation order.
func (s *DirectoryService) ListUsers(ctx context.Context, actor domain.Role) ([]*domain.User, error) {
	if !actor.Can(domain.CapManageUsers) {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx)
}

var _ ports.DirectoryService = (*DirectoryService)(nil)
