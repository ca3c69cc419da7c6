package resumes

import (
	"context"
	"time"
)

// Repo persists resume records. Create assigns the ID.
type Repo interface {
	Create(ctx context.Context, r Resume) (Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	ListUploadedBefore(ctx context.Context, cutoff time.Time) ([]Resume, error)
	Delete(ctx context.Context, id int64) error
}
