package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// LedgerService owns the document lifecycle. A single mutex serializes all
// mutating operations so capacity checks and the subsequent insert are one
// indivisible step; reads take the same lock briefly to see a consistent
// snapshot.
type LedgerService struct {
	mu            sync.Mutex
	repo          ports.LedgerRepository
	limits        map[domain.Category]int
	archiveSecret string
	publisher     ports.EventPublisher
	logger        zerolog.Logger
	now           ports.Clock
}

func NewLedgerService(
	repo ports.LedgerRepository,
	limits map[domain.Category]int,
	archiveSecret string,
	publisher ports.EventPublisher,
	logger zerolog.Logger,
) *LedgerService {
	if len(limits) == 0 {
		limits = domain.DefaultCategoryLimits
	}
	return &LedgerService{
		repo:          repo,
		limits:        limits,
		archiveSecret: archiveSecret,
		publisher:     publisher,
		logger:        logger,
		now:           time.Now,
	}
}

// SetClock replaces the time source. Test hook.
func (s *LedgerService) SetClock(clock ports.Clock) { s.now = clock }

// Create validates the form, enforces the category capacity limit, issues a
// unique code and stores the new active document. Emits a "document created"
// event on success.
func (s *LedgerService) Create(ctx context.Context, input ports.CreateDocumentInput) (*domain.Document, error) {
	if !input.Role.Can(domain.CapCreateDocument) {
		return nil, domain.ErrForbidden
	}

	var missing []string
	if strings.TrimSpace(input.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(input.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Missing: missing}
	}

	if !input.Category.Valid() {
		return nil, domain.ErrUnknownCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	limit := s.limits[input.Category]
	count, err := s.repo.CountActive(ctx, input.Category)
	if err != nil {
		return nil, err
	}
	if count >= limit {
		return nil, &domain.CapacityError{Category: input.Category, Limit: limit}
	}

	code, err := s.nextCode(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	doc := &domain.Document{
		ID:              uuid.NewString(),
		Code:            code,
		LastName:        input.LastName,
		FirstName:       input.FirstName,
		MiddleName:      input.MiddleName,
		Phone:           input.Phone,
		Email:           input.Email,
		ItemDescription: input.ItemDescription,
		Category:        input.Category,
		DepositAmount:   parseAmount(input.DepositAmount),
		PickupAmount:    parseAmount(input.PickupAmount),
		DepositedAt:     now,
		PickupDate:      input.PickupDate,
		Status:          domain.StatusActive,
		CreatedBy:       creatorIdentity(input.Username, input.Role),
		CreatedAt:       now,
	}

	if err := s.repo.InsertActive(ctx, doc); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to store document")
		return nil, err
	}

	s.logger.Info().
		Str("code", doc.Code).
		Str("category", string(doc.Category)).
		Str("created_by", doc.CreatedBy).
		Msg("document created")

	s.publish(domain.LedgerEvent{
		Type:     domain.EventDocumentCreated,
		Code:     doc.Code,
		Category: doc.Category,
		At:       now,
	})

	return doc, nil
}

// Issue moves an active document into the archive. Any authenticated role
// may issue; the capability matrix is not consulted here.
func (s *LedgerService) Issue(ctx context.Context, id string, role domain.Role) (*domain.Document, error) {
	if !role.Valid() {
		return nil, domain.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Status = domain.StatusArchived
	doc.ArchivedAt = s.now().UTC()

	if err := s.repo.Archive(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", doc.Code).Msg("document issued")

	s.publish(domain.LedgerEvent{
		Type:     domain.EventDocumentIssued,
		Code:     doc.Code,
		Category: doc.Category,
		At:       doc.ArchivedAt,
	})

	return doc, nil
}

// DeleteActive permanently removes an active document. Archived records are
// immutable and never deletable.
func (s *LedgerService) DeleteActive(ctx context.Context, id string, role domain.Role) error {
	if !role.Can(domain.CapDeleteDocument) {
		return domain.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.FindActiveByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteActive(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Str("role", string(role)).Msg("document deleted")
	return nil
}

// LookupByCode returns the active document carrying code. Archived documents
// are not found by this lookup: issuing is one-way.
func (s *LedgerService) LookupByCode(ctx context.Context, code string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.FindActiveByCode(ctx, code)
}

// ListByCategory returns the active set in insertion order, optionally
// filtered to one category.
func (s *LedgerService) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Document, error) {
	if category != "" && !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ListActive(ctx, category)
}

// ListArchive returns the archived set. The caller needs the view-archive
// capability and must present the reserved archive secret.
func (s *LedgerService) ListArchive(ctx context.Context, q ports.ArchiveQuery) ([]*domain.Document, error) {
	if !q.Role.Can(domain.CapViewArchive) {
		return nil, domain.ErrForbidden
	}
	if !secretsEqual(q.ArchiveSecret, s.archiveSecret) {
		return nil, domain.ErrBadSecret
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ListArchived(ctx)
}

// nextCode draws from the category's monotonic sequence until an unused code
// comes up. Sequence values are never reused, so the loop only spins when a
// code predating this ledger instance is already archived.
func (s *LedgerService) nextCode(ctx context.Context, category domain.Category) (string, error) {
	prefix := strings.ToUpper(string(category))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	for {
		seq, err := s.repo.NextSequence(ctx, category)
		if err != nil {
			return "", err
		}
		code := fmt.Sprintf("%s-%04d", prefix, seq)
		taken, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
}

func (s *LedgerService) publish(event domain.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(event)
}

// parseAmount mirrors the original form handling: absent or non-numeric
// amounts become 0.
func parseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// creatorIdentity prefers the username of a directory-backed session and
// falls back to the role name.
func creatorIdentity(username string, role domain.Role) string {
	if username != "" {
		return username
	}
	return string(role)
}

var _ ports.LedgerService = (*LedgerService)(nil)
