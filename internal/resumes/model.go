package resumes

import "time"

// MaxFileSize is the upload ceiling in bytes.
const MaxFileSize int64 = 5 << 20

// FormField is the multipart field carrying the file.
const FormField = "resume"

// Resume is the metadata of an uploaded file. Records are immutable.
type Resume struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	FilePath     string    `json:"filePath"`
	UploadedAt   time.Time `json:"uploadedAt"`
}
