// Package memory provides the volatile in-process store matching the
// reference behavior: everything lives for the process lifetime only.
package memory

import (
	"context"
	"sync"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// DocumentRepository keeps the active and archived sets as ordered slices.
// The ledger service serializes mutating sequences; the internal mutex only
// protects individual calls.
type DocumentRepository struct {
	mu        sync.RWMutex
	active    []*domain.Document
	archived  []*domain.Document
	sequences map[domain.Category]int
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{sequences: make(map[domain.Category]int)}
}

func (r *DocumentRepository) InsertActive(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *doc
	r.active = append(r.active, &clone)
	return nil
}

func (r *DocumentRepository) FindActiveByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.active {
		if d.ID == id {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (r *DocumentRepository) FindActiveByCode(_ context.Context, code string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.active {
		if d.Code == code {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDocumentNotFound
}

func (r *DocumentRepository) ListActive(_ context.Context, category domain.Category) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Document, 0, len(r.active))
	for _, d := range r.active {
		if category != "" && d.Category != category {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (r *DocumentRepository) ListArchived(_ context.Context) ([]*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Document, 0, len(r.archived))
	for _, d := range r.archived {
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (r *DocumentRepository) CountActive(_ context.Context, category domain.Category) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, d := range r.active {
		if d.Category == category {
			n++
		}
	}
	return n, nil
}

func (r *DocumentRepository) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.active {
		if d.Code == code {
			return true, nil
		}
	}
	for _, d := range r.archived {
		if d.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *DocumentRepository) NextSequence(_ context.Context, category domain.Category) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequences[category]++
	return r.sequences[category], nil
}

func (r *DocumentRepository) Archive(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.active {
		if d.ID == doc.ID {
			r.active = append(r.active[:i], r.active[i+1:]...)
			clone := *doc
			r.archived = append(r.archived, &clone)
			return nil
		}
	}
	return domain.ErrDocumentNotFound
}

func (r *DocumentRepository) DeleteActive(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.active {
		if d.ID == id {
			r.active = append(r.active[:i], r.active[i+1:]...)
			return nil
		}
	}
	return domain.ErrDocumentNotFound
}

var _ ports.LedgerRepository = (*DocumentRepository)(nil)
