package resumes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateReturnsGeneratedID(t *testing.T) {
	repo, mock := newMockRepo(t)
	uploadedAt := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	in := Resume{
		Filename:     "resume-1-2.pdf",
		OriginalName: "cv.pdf",
		FileSize:     1234,
		MimeType:     "application/pdf",
		FilePath:     "uploads/resume-1-2.pdf",
		UploadedAt:   uploadedAt,
	}

	mock.ExpectQuery("INSERT INTO resumes").
		WithArgs(in.Filename, in.OriginalName, in.MimeType, in.FileSize, in.FilePath, in.UploadedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	got, err := repo.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID != 7 || got.Filename != in.Filename {
		t.Fatalf("unexpected record %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT id, filename, original_name").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListUploadedBefore(t *testing.T) {
	repo, mock := newMockRepo(t)
	cutoff := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "filename", "original_name", "mime_type", "file_size", "file_path", "uploaded_at"}

	mock.ExpectQuery("FROM resumes\\s+WHERE uploaded_at < \\$1").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), "a.pdf", "a.pdf", "application/pdf", int64(10), "uploads/a.pdf", cutoff.Add(-48*time.Hour)).
			AddRow(int64(2), "b.docx", "b.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", int64(20), "uploads/b.docx", cutoff.Add(-25*time.Hour)))

	got, err := repo.ListUploadedBefore(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("ListUploadedBefore: %v", err)
	}
	if len(got) != 2 || got[1].Filename != "b.docx" || got[1].FileSize != 20 {
		t.Fatalf("unexpected rows %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM resumes").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
