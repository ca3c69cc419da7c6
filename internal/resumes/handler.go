package resumes

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/extract"
	"resume-roaster/internal/shared/server/respond"
	"resume-roaster/internal/shared/telemetry"
)

// multipart framing allowance on top of MaxFileSize
const bodySlack = 1 << 20

const (
	msgNoFile   = "No file uploaded or file is invalid."
	msgTooLarge = "File too large. Maximum size is 5MB."
)

// routeMessages holds the user-facing texts that differ per upload route.
type routeMessages struct {
	invalidType string
	failure     string
}

var (
	uploadMessages = routeMessages{
		invalidType: "Invalid file type. Only PDF and DOCX files are allowed.",
		failure:     "Failed to upload resume",
	}
	extractMessages = routeMessages{
		invalidType: "Invalid file type. Only PDF and DOCX files are supported for text extraction.",
		failure:     "Failed to extract text from resume",
	}
)

// Handler wires HTTP handlers to the resumes service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the /api group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/resume", h.upload)
	rg.GET("/resume/:id", h.get)
	rg.POST("/extract-text", h.extractText)
}

func (h *Handler) upload(c *gin.Context) {
	in, file, ok := readUpload(c, uploadMessages)
	if !ok {
		return
	}
	defer file.Close()

	res, err := h.Svc.Upload(c.Request.Context(), in)
	if err != nil {
		writeUploadError(c, err, uploadMessages)
		return
	}
	c.Set("resumeId", res.ID)
	respond.Created(c, UploadResponse{Message: "Resume uploaded successfully", Resume: res})
}

func (h *Handler) extractText(c *gin.Context) {
	in, file, ok := readUpload(c, extractMessages)
	if !ok {
		return
	}
	defer file.Close()

	text, err := h.Svc.ExtractText(c.Request.Context(), in)
	if err != nil {
		writeUploadError(c, err, extractMessages)
		return
	}
	respond.OK(c, ExtractTextResponse{Message: "Resume text extracted successfully", Text: text})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume id must be a positive integer", nil)
		return
	}
	res, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load resume", nil)
		return
	}
	respond.OK(c, gin.H{"resume": res})
}

// readUpload parses the multipart field and validates it before any storage
// is touched. On failure the response has already been written.
func readUpload(c *gin.Context, msgs routeMessages) (UploadInput, multipart.File, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+bodySlack)

	fh, err := c.FormFile(FormField)
	if err != nil {
		if isBodyTooLarge(err) {
			respond.Error(c, http.StatusBadRequest, "file_too_large", msgTooLarge, nil)
			return UploadInput{}, nil, false
		}
		respond.Error(c, http.StatusBadRequest, "no_file", msgNoFile, nil)
		return UploadInput{}, nil, false
	}

	in := UploadInput{
		Field:        FormField,
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
	}
	if err := validateMeta(in.MimeType, in.Size); err != nil {
		writeUploadError(c, err, msgs)
		return UploadInput{}, nil, false
	}

	file, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "no_file", msgNoFile, nil)
		return UploadInput{}, nil, false
	}
	in.Body = file
	return in, file, true
}

func writeUploadError(c *gin.Context, err error, msgs routeMessages) {
	var extractErr *extract.Error
	switch {
	case errors.Is(err, ErrNoFile):
		respond.Error(c, http.StatusBadRequest, "no_file", msgNoFile, nil)
	case errors.Is(err, ErrInvalidType):
		respond.Error(c, http.StatusBadRequest, "invalid_file_type", msgs.invalidType, nil)
	case errors.Is(err, ErrTooLarge):
		respond.Error(c, http.StatusBadRequest, "file_too_large", msgTooLarge, nil)
	case errors.As(err, &extractErr):
		telemetry.Warn("resume.extract_failed", map[string]any{
			"format": extractErr.Format,
			"err":    extractErr.Err,
		})
		respond.Error(c, http.StatusBadRequest, "extraction_failed", extractErr.Message(), nil)
	default:
		telemetry.Error("resume.upload_failed", map[string]any{"err": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", msgs.failure, nil)
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
