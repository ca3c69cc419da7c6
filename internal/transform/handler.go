package transform

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/server/respond"
)

// Handler exposes the transform operations over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches /roast, /analyze and /rewrite to rg.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/roast", h.roast)
	rg.POST("/analyze", h.analyze)
	rg.POST("/rewrite", h.rewrite)
}

type textRequest struct {
	Text           *string `json:"text"`
	OriginalFormat string  `json:"originalFormat"`
	PreserveFormat bool    `json:"preserveFormat"`
}

func (h *Handler) roast(c *gin.Context) {
	req, ok := bindText(c, OpRoast)
	if !ok {
		return
	}
	c.Set("aiOperation", string(OpRoast))
	roast, err := h.Svc.Roast(c.Request.Context(), *req.Text)
	if err != nil {
		writeError(c, OpRoast, err)
		return
	}
	respond.OK(c, gin.H{"message": "Resume roasted successfully", "roast": roast})
}

func (h *Handler) analyze(c *gin.Context) {
	req, ok := bindText(c, OpAnalyze)
	if !ok {
		return
	}
	c.Set("aiOperation", string(OpAnalyze))
	analysis, err := h.Svc.Analyze(c.Request.Context(), *req.Text)
	if err != nil {
		writeError(c, OpAnalyze, err)
		return
	}
	respond.OK(c, gin.H{"message": "Resume analyzed successfully", "analysis": analysis})
}

func (h *Handler) rewrite(c *gin.Context) {
	req, ok := bindText(c, OpRewrite)
	if !ok {
		return
	}
	c.Set("aiOperation", string(OpRewrite))
	rewritten, err := h.Svc.Rewrite(c.Request.Context(), *req.Text, RewriteOptions{
		PreserveFormat: req.PreserveFormat,
		OriginalFormat: req.OriginalFormat,
	})
	if err != nil {
		writeError(c, OpRewrite, err)
		return
	}
	respond.OK(c, gin.H{"message": "Resume rewritten successfully", "rewrittenText": rewritten})
}

func bindText(c *gin.Context, op Op) (textRequest, bool) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide valid resume text to "+string(op), nil)
		return req, false
	}
	return req, true
}

func writeError(c *gin.Context, op Op, err error) {
	if errors.Is(err, ErrEmptyText) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please provide valid resume text to "+string(op), nil)
		return
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		respond.Abort(c, tErr.HTTPStatus(), respond.ErrorResponse{
			Message: tErr.Message(),
			Code:    "ai_error",
			Kind:    string(tErr.Kind),
		})
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", (&Error{Op: op}).Message(), nil)
}
