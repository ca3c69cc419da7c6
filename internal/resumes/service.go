package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"resume-roaster/internal/extract"
	"resume-roaster/internal/shared/metrics"
	"resume-roaster/internal/shared/storage/object"
	"resume-roaster/internal/shared/telemetry"
	"resume-roaster/internal/shared/util"
)

// UploadInput describes one received file.
type UploadInput struct {
	Field        string
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// Service handles resume uploads and their lifecycle.
type Service struct {
	Repo      Repo
	Store     object.ObjectStore
	Retention time.Duration
	Now       func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, store object.ObjectStore, retention time.Duration) *Service {
	return &Service{Repo: repo, Store: store, Retention: retention, Now: time.Now}
}

// pathResolver is implemented by stores backed by the local filesystem.
type pathResolver interface {
	Path(storageKey string) (string, error)
}

// Validate checks media type and declared size before anything is stored.
func Validate(in UploadInput) error {
	if in.Body == nil {
		return ErrNoFile
	}
	return validateMeta(in.MimeType, in.Size)
}

func validateMeta(mimeType string, size int64) error {
	if !extract.IsAllowedMimeType(mimeType) {
		return ErrInvalidType
	}
	if size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// Upload stores the file and records its metadata.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Resume, error) {
	if err := Validate(in); err != nil {
		metrics.IncUpload("rejected")
		return Resume{}, err
	}

	key, size, err := s.save(ctx, in)
	if err != nil {
		metrics.IncUpload(outcomeFor(err))
		return Resume{}, err
	}

	res, err := s.Repo.Create(ctx, Resume{
		Filename:     key,
		OriginalName: in.OriginalName,
		FileSize:     size,
		MimeType:     in.MimeType,
		FilePath:     s.Store.Location(key),
		UploadedAt:   s.now().UTC(),
	})
	if err != nil {
		s.remove(context.WithoutCancel(ctx), key)
		metrics.IncUpload("error")
		return Resume{}, fmt.Errorf("create resume record: %w", err)
	}

	metrics.IncUpload("stored")
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":     res.ID,
		"filename":      res.Filename,
		"original_name": res.OriginalName,
		"file_size":     res.FileSize,
		"mime_type":     res.MimeType,
	})
	return res, nil
}

// ExtractText stores the file temporarily, extracts its text and always
// deletes the stored copy. No record is created.
func (s *Service) ExtractText(ctx context.Context, in UploadInput) (string, error) {
	if err := Validate(in); err != nil {
		metrics.IncUpload("rejected")
		return "", err
	}

	key, _, err := s.save(ctx, in)
	if err != nil {
		metrics.IncUpload(outcomeFor(err))
		return "", err
	}
	defer s.remove(context.WithoutCancel(ctx), key)
	metrics.IncUpload("extracted")

	if pr, ok := s.Store.(pathResolver); ok {
		path, err := pr.Path(key)
		if err != nil {
			return "", err
		}
		return extract.ExtractFile(ctx, path, in.MimeType)
	}

	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("open stored upload: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read stored upload: %w", err)
	}
	return extract.ExtractBytes(ctx, data, in.MimeType)
}

func (s *Service) Get(ctx context.Context, id int64) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// PurgeExpired deletes records and files older than the retention window.
// A zero retention disables purging.
func (s *Service) PurgeExpired(ctx context.Context, now time.Time) (int, error) {
	if s.Retention <= 0 {
		return 0, nil
	}
	cutoff := now.Add(-s.Retention)
	expired, err := s.Repo.ListUploadedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list expired resumes: %w", err)
	}

	purged := 0
	var errs []error
	for _, res := range expired {
		if err := s.Store.Delete(ctx, res.Filename); err != nil {
			errs = append(errs, fmt.Errorf("delete file %s: %w", res.Filename, err))
			continue
		}
		if err := s.Repo.Delete(ctx, res.ID); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete record %d: %w", res.ID, err))
			continue
		}
		purged++
	}

	metrics.AddPurged(purged)
	if purged > 0 || len(errs) > 0 {
		telemetry.Info("resume.purged", map[string]any{
			"purged": purged,
			"failed": len(errs),
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}
	return purged, errors.Join(errs...)
}

func (s *Service) save(ctx context.Context, in UploadInput) (string, int64, error) {
	key := util.UniqueFileName(in.Field, in.OriginalName, s.now())
	limited := io.LimitReader(in.Body, MaxFileSize+1)
	size, err := s.Store.Save(ctx, key, in.MimeType, limited)
	if err != nil {
		return "", 0, fmt.Errorf("store upload: %w", err)
	}
	if size > MaxFileSize {
		s.remove(context.WithoutCancel(ctx), key)
		return "", 0, ErrTooLarge
	}
	return key, size, nil
}

func (s *Service) remove(ctx context.Context, key string) {
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("resume.cleanup_failed", map[string]any{
			"filename": key,
			"err":      err,
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func outcomeFor(err error) string {
	if errors.Is(err, ErrTooLarge) {
		return "rejected"
	}
	return "error"
}
