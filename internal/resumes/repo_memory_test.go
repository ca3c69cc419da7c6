package resumes

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoIDsIncrementAndAreNotReused(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, Resume{Filename: "a.pdf"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, _ := repo.Create(ctx, Resume{Filename: "b.pdf"})
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	third, _ := repo.Create(ctx, Resume{Filename: "c.pdf"})
	if third.ID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", third.ID)
	}

	if _, err := repo.GetByID(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted record, got %v", err)
	}
	got, err := repo.GetByID(ctx, first.ID)
	if err != nil || got.Filename != "a.pdf" {
		t.Fatalf("GetByID: %+v, %v", got, err)
	}
}

func TestMemoryRepoListUploadedBefore(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	_, _ = repo.Create(ctx, Resume{Filename: "old.pdf", UploadedAt: base.Add(-48 * time.Hour)})
	_, _ = repo.Create(ctx, Resume{Filename: "new.pdf", UploadedAt: base.Add(-time.Hour)})
	_, _ = repo.Create(ctx, Resume{Filename: "older.pdf", UploadedAt: base.Add(-72 * time.Hour)})

	got, err := repo.ListUploadedBefore(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("ListUploadedBefore: %v", err)
	}
	if len(got) != 2 || got[0].Filename != "old.pdf" || got[1].Filename != "older.pdf" {
		t.Fatalf("unexpected expired set %+v", got)
	}
}

func TestMemoryRepoDeleteMissing(t *testing.T) {
	if err := NewMemoryRepo().Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
