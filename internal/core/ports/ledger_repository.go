package ports

import (
	"context"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// LedgerRepository defines storage primitives for the active and archived
// document collections. The two sets are disjoint: Archive moves a record
// from one to the other atomically at the storage level. Callers (the ledger
// service) serialize mutating sequences, so implementations only need
// per-call consistency.
type LedgerRepository interface {
	// InsertActive adds a new document to the active set.
	InsertActive(ctx context.Context, doc *domain.Document) error
	// FindActiveByID returns the active document with the given id, or
	// domain.ErrDocumentNotFound. Archived records are not visible here.
	FindActiveByID(ctx context.Context, id string) (*domain.Document, error)
	// FindActiveByCode returns the active document with the given code, or
	// domain.ErrDocumentNotFound.
	FindActiveByCode(ctx context.Context, code string) (*domain.Document, error)
	// ListActive returns the active set in insertion order, optionally
	// filtered to one category (empty category = all).
	ListActive(ctx context.Context, category domain.Category) ([]*domain.Document, error)
	// ListArchived returns the archived set in archival order.
	ListArchived(ctx context.Context) ([]*domain.Document, error)
	// CountActive returns the active-set population of one category.
	CountActive(ctx context.Context, category domain.Category) (int, error)
	// CodeExists reports whether code is taken in either set, active or
	// archived.
	CodeExists(ctx context.Context, code string) (bool, error)
	// NextSequence returns the next value of the category's monotonic code
	// sequence. Values are never reused, even after deletions.
	NextSequence(ctx context.Context, category domain.Category) (int, error)
	// Archive moves the active document with the given id into the archived
	// set, applying the status and archival timestamp already set on doc.
	Archive(ctx context.Context, doc *domain.Document) error
	// DeleteActive permanently removes an active document. Archived records
	// are never deletable; implementations must not touch the archive.
	DeleteActive(ctx context.Context, id string) error
}
