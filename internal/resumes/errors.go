package resumes

import "errors"

var (
	ErrNotFound    = errors.New("resume not found")
	ErrNoFile      = errors.New("no file uploaded")
	ErrInvalidType = errors.New("invalid file type")
	ErrTooLarge    = errors.New("file too large")
)
