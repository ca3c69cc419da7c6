package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the contact service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the contact route to the /api group.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("/contact", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	var sub Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrMissingFields.Error(), nil)
		return
	}

	if err := h.Svc.Submit(c.Request.Context(), sub); err != nil {
		if errors.Is(err, ErrMissingFields) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrMissingFields.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "contact_failed",
			"Failed to process contact form submission", rootMessage(err))
		return
	}
	respond.OK(c, gin.H{"message": "Contact form submitted successfully"})
}

// rootMessage returns the innermost error text, which is what the caller
// can act on.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
