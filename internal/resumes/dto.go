package resumes

// UploadResponse is returned by POST /api/resume.
type UploadResponse struct {
	Message string `json:"message"`
	Resume  Resume `json:"resume"`
}

// ExtractTextResponse is returned by POST /api/extract-text.
type ExtractTextResponse struct {
	Message string `json:"message"`
	Text    string `json:"text"`
}
