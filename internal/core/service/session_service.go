package service

import (
	"context"
	"crypto/subtle"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

const (
	maxFailedAttempts = 3
	lockoutWindow     = 90 * time.Second
)

// SessionService authenticates logins against the static credential table
// and the user directory, and enforces the 90-second lockout after three
// consecutive failures. Both login paths share one failure counter.
type SessionService struct {
	directory ports.DirectoryRepository
	creds     domain.Credentials
	// privilegedUsers binds each special role to the username that carries
	// it; the dual-secret path checks them in this order.
	privilegedUsers []PrivilegedIdentity
	lockout         ports.LockoutStore
	jwtSecret       string
	tokenTTL        time.Duration
	logger          zerolog.Logger
	now             ports.Clock
}

// PrivilegedIdentity binds a special username to its fixed role.
type PrivilegedIdentity struct {
	Username string
	Role     domain.Role
}

func NewSessionService(
	directory ports.DirectoryRepository,
	creds domain.Credentials,
	privileged []PrivilegedIdentity,
	lockout ports.LockoutStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		directory:       directory,
		creds:           creds,
		privilegedUsers: privileged,
		lockout:         lockout,
		jwtSecret:       jwtSecret,
		tokenTTL:        tokenTTL,
		logger:          logger,
		now:             time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (s *SessionService) SetClock(clock ports.Clock) { s.now = clock }

// Login authenticates an ordinary role through the directory path: the
// (username, role) pair must exist and be unblocked, and the secret must
// match the role-level shared secret exactly.
func (s *SessionService) Login(ctx context.Context, role domain.Role, username, secret string) (*ports.Session, error) {
	if err := s.checkLockout(ctx); err != nil {
		return nil, err
	}

	if !role.Valid() || role.Privileged() {
		return nil, s.fail(ctx, domain.ErrUserNotFound, username)
	}

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil || user.Role != role {
		return nil, s.fail(ctx, domain.ErrUserNotFound, username)
	}
	if user.Blocked {
		return nil, s.fail(ctx, domain.ErrUserBlocked, username)
	}

	want, ok := s.creds.SecretFor(role)
	if !ok || !secretsEqual(secret, want) {
		return nil, s.fail(ctx, domain.ErrBadSecret, username)
	}

	return s.establish(ctx, role, username)
}

// LoginPrivileged authenticates through the dual-secret path: the secret is
// compared against each special credential in turn, and the first match
// whose bound user is not blocked determines the role.
func (s *SessionService) LoginPrivileged(ctx context.Context, secret string) (*ports.Session, error) {
	if err := s.checkLockout(ctx); err != nil {
		return nil, err
	}

	matchedBlocked := false
	for _, id := range s.privilegedUsers {
		want, ok := s.creds.SecretFor(id.Role)
		if !ok || !secretsEqual(secret, want) {
			continue
		}
		user, err := s.directory.FindByUsername(ctx, id.Username)
		if err != nil {
			continue
		}
		if user.Blocked {
			matchedBlocked = true
			continue
		}
		return s.establish(ctx, id.Role, id.Username)
	}

	if matchedBlocked {
		return nil, s.fail(ctx, domain.ErrUserBlocked, "")
	}
	return nil, s.fail(ctx, domain.ErrBadSecret, "")
}

// Logout ends a session. Lockout state is deliberately left alone: the
// backoff protects the login door, not the session.
func (s *SessionService) Logout(ctx context.Context) {
	s.logger.Info().Msg("session closed")
}

func (s *SessionService) checkLockout(ctx context.Context) error {
	until, err := s.lockout.LockedUntil(ctx)
	if err != nil {
		return err
	}
	if until.IsZero() {
		return nil
	}
	now := s.now()
	if now.Before(until) {
		remaining := int(math.Ceil(until.Sub(now).Seconds()))
		return &domain.LockedOutError{RemainingSeconds: remaining}
	}
	// Lockout expired: clear it so the attempt is evaluated normally.
	if err := s.lockout.Reset(ctx); err != nil {
		return err
	}
	return nil
}

// fail records one failed attempt and arms the lockout on the third.
// UserNotFound, UserBlocked and BadSecret all count identically.
func (s *SessionService) fail(ctx context.Context, cause error, username string) error {
	attempts, err := s.lockout.RecordFailure(ctx)
	if err != nil {
		return err
	}
	if attempts >= maxFailedAttempts {
		until := s.now().Add(lockoutWindow)
		if err := s.lockout.Lock(ctx, until); err != nil {
			return err
		}
		s.logger.Warn().Time("until", until).Msg("login locked after repeated failures")
	} else {
		s.logger.Info().Str("username", username).Int("attempt", attempts).Err(cause).Msg("login failed")
	}
	return cause
}

func (s *SessionService) establish(ctx context.Context, role domain.Role, username string) (*ports.Session, error) {
	if err := s.lockout.Reset(ctx); err != nil {
		return nil, err
	}

	token, err := s.signToken(role, username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("role", string(role)).Str("username", username).Msg("login succeeded")
	return &ports.Session{Token: token, Role: role, Username: username}, nil
}

func (s *SessionService) signToken(role domain.Role, username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"role":     string(role),
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// secretsEqual compares shared secrets in constant time. Secrets are plain
// strings by design: hashing is out of scope for this system.
func secretsEqual(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

var _ ports.SessionService = (*SessionService)(nil)
