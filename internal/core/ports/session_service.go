package ports

import (
	"context"
	"time"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// Session is the result of a successful login: the signed token and the
// authenticated identity behind it.
type Session struct {
	Token    string
	Role     domain.Role
	Username string
}

// SessionService authenticates role+secret pairs into live sessions and
// enforces brute-force backoff. Both login paths share one failure counter:
// three consecutive failures lock all logins for the backoff window.
type SessionService interface {
	// Login is the directory path: an ordinary role plus a username known to
	// the directory, checked against the role-level shared secret.
	Login(ctx context.Context, role domain.Role, username, secret string) (*Session, error)
	// LoginPrivileged is the dual-secret path: no username, no pre-chosen
	// role. The secret alone selects one of the two privileged identities.
	LoginPrivileged(ctx context.Context, secret string) (*Session, error)
	// Logout acknowledges the end of a session. Lockout state is
	// deliberately untouched: backoff is anti-brute-force, not session-scoped.
	Logout(ctx context.Context)
}

// LockoutStore keeps the shared failed-attempt counter and lockout expiry.
// The in-memory implementation is the default; a Redis-backed one shares
// state across instances.
type LockoutStore interface {
	// Failures returns the current consecutive-failure count.
	Failures(ctx context.Context) (int, error)
	// RecordFailure increments and returns the failure count.
	RecordFailure(ctx context.Context) (int, error)
	// LockedUntil returns the lockout expiry, zero when not locked.
	LockedUntil(ctx context.Context) (time.Time, error)
	// Lock sets the lockout expiry and resets the failure counter for the
	// next cycle.
	Lock(ctx context.Context, until time.Time) error
	// Reset clears both the counter and any lockout expiry.
	Reset(ctx context.Context) error
}
