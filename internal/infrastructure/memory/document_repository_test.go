package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

func TestDocumentRepository_CodeExistsSpansBothSets(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	doc := &domain.Document{ID: "1", Code: "CAR-0001", Category: domain.CategoryCards}
	if err := repo.InsertActive(ctx, doc); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if taken, _ := repo.CodeExists(ctx, "CAR-0001"); !taken {
		t.Fatalf("active code not found")
	}

	if err := repo.Archive(ctx, doc); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if taken, _ := repo.CodeExists(ctx, "CAR-0001"); !taken {
		t.Fatalf("archived code must still count as taken")
	}
	if taken, _ := repo.CodeExists(ctx, "CAR-0002"); taken {
		t.Fatalf("unknown code reported as taken")
	}
}

func TestDocumentRepository_SequencesAreMonotonicPerCategory(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		seq, err := repo.NextSequence(ctx, domain.CategoryCards)
		if err != nil {
			t.Fatalf("next sequence: %v", err)
		}
		if seq != want {
			t.Fatalf("expected %d, got %d", want, seq)
		}
	}

	// Other categories count independently.
	if seq, _ := repo.NextSequence(ctx, domain.CategoryPhotos); seq != 1 {
		t.Fatalf("photos sequence should start at 1, got %d", seq)
	}
}

func TestDocumentRepository_ReturnsClones(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	_ = repo.InsertActive(ctx, &domain.Document{ID: "1", Code: "CAR-0001", LastName: "Ivanova"})

	got, err := repo.FindActiveByID(ctx, "1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	got.LastName = "mutated"

	again, _ := repo.FindActiveByID(ctx, "1")
	if again.LastName != "Ivanova" {
		t.Fatalf("stored record was mutated through a returned pointer")
	}
}

func TestDocumentRepository_DeleteActiveOnly(t *testing.T) {
	repo := NewDocumentRepository()
	ctx := context.Background()

	doc := &domain.Document{ID: "1", Code: "CAR-0001"}
	_ = repo.InsertActive(ctx, doc)
	_ = repo.Archive(ctx, doc)

	if err := repo.DeleteActive(ctx, "1"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("delete of archived record: expected ErrDocumentNotFound, got %v", err)
	}

	archived, _ := repo.ListArchived(ctx)
	if len(archived) != 1 {
		t.Fatalf("archive changed: %d records", len(archived))
	}
}
