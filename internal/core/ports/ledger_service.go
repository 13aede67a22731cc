package ports

import (
	"context"
	"time"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// CreateDocumentInput carries the client form for a new deposit record.
// Amounts arrive as raw strings and parse like the original form did:
// absent or non-numeric values become 0.
type CreateDocumentInput struct {
	LastName        string
	FirstName       string
	MiddleName      string
	Phone           string
	Email           string
	ItemDescription string
	Category        domain.Category
	DepositAmount   string
	PickupAmount    string
	PickupDate      string
	// Actor identity: the authenticated role, and the username when the
	// session is directory-backed (falls back to the role name otherwise).
	Role     domain.Role
	Username string
}

// ArchiveQuery gates the archive listing: the caller needs the view-archive
// capability and must also present the reserved archive secret.
type ArchiveQuery struct {
	Role          domain.Role
	ArchiveSecret string
}

// LedgerService owns the document lifecycle and its invariants: per-category
// capacity on the active set, and code uniqueness across active+archived.
type LedgerService interface {
	Create(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	// Issue moves an active document into the archive, stamping ArchivedAt.
	// Any authenticated role may issue.
	Issue(ctx context.Context, id string, role domain.Role) (*domain.Document, error)
	// DeleteActive permanently removes an active document. Requires the
	// delete-document capability; archived records are never deletable.
	DeleteActive(ctx context.Context, id string, role domain.Role) error
	// LookupByCode finds the active document carrying code. Issued documents
	// are not found by this lookup.
	LookupByCode(ctx context.Context, code string) (*domain.Document, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Document, error)
	ListArchive(ctx context.Context, q ArchiveQuery) ([]*domain.Document, error)
}

// EventPublisher receives ledger lifecycle events. Publishing is
// fire-and-forget: implementations must never block ledger operations or
// propagate failures back into them.
type EventPublisher interface {
	Publish(event domain.LedgerEvent)
}

// CodeRenderer turns a document code into a scannable image artifact.
// The ledger never inspects the returned bytes.
type CodeRenderer interface {
	Render(code string, size int) ([]byte, error)
}

// Announcer performs out-of-band playback of a short text cue. Failures are
// swallowed by implementations and never reported to callers.
type Announcer interface {
	Announce(cue string)
}

// Clock abstracts time for services with timing-dependent behavior.
type Clock func() time.Time
