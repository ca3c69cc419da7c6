package export

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/server/respond"
	"resume-roaster/internal/shared/telemetry"
)

type exportRequest struct {
	Text     *string `json:"text"`
	Format   string  `json:"format"`
	FileName string  `json:"fileName"`
}

// Handler serves rendered exports.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the export route to the /api group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide valid resume text to export", nil)
		return
	}
	format, err := ParseFormat(req.Format)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "Unsupported export format. Use txt, docx or pdf.", nil)
		return
	}

	doc, err := Render(format, req.FileName, *req.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyText) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide valid resume text to export", nil)
			return
		}
		telemetry.Error("export.failed", map[string]any{"format": string(format), "err": err})
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Failed to export resume", nil)
		return
	}

	telemetry.Info("export.rendered", map[string]any{
		"format": string(format),
		"bytes":  len(doc.Data),
	})
	respond.Attachment(c, doc.FileName, doc.ContentType, doc.Data)
}
