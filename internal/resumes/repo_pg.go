package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a record and returns it with the generated ID.
func (r *PGRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	const query = `
INSERT INTO resumes (
    filename,
    original_name,
    mime_type,
    file_size,
    file_path,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		res.Filename,
		res.OriginalName,
		res.MimeType,
		res.FileSize,
		res.FilePath,
		res.UploadedAt,
	).Scan(&res.ID)
	if err != nil {
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	const query = `
SELECT id, filename, original_name, mime_type, file_size, file_path, uploaded_at
FROM resumes
WHERE id = $1`

	var res Resume
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&res.ID,
		&res.Filename,
		&res.OriginalName,
		&res.MimeType,
		&res.FileSize,
		&res.FilePath,
		&res.UploadedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	if err != nil {
		return Resume{}, err
	}
	return res, nil
}

// ListUploadedBefore returns records older than cutoff, oldest first.
func (r *PGRepo) ListUploadedBefore(ctx context.Context, cutoff time.Time) ([]Resume, error) {
	const query = `
SELECT id, filename, original_name, mime_type, file_size, file_path, uploaded_at
FROM resumes
WHERE uploaded_at < $1
ORDER BY id ASC`

	rows, err := r.DB.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var res Resume
		if err := rows.Scan(
			&res.ID,
			&res.Filename,
			&res.OriginalName,
			&res.MimeType,
			&res.FileSize,
			&res.FilePath,
			&res.UploadedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM resumes WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
