package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/server/respond"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB Pinger
}

// NewService constructs a new health service. db may be nil when records
// are kept in memory.
func NewService(db Pinger) *Service {
	return &Service{DB: db}
}

// Status reports whether the process and its database are usable.
func (s *Service) Status(ctx context.Context) Status {
	if s.DB == nil {
		return Status{OK: true, Database: "memory"}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		return Status{OK: false, Database: "unavailable"}
	}
	return Status{OK: true, Database: "ok"}
}

// RegisterRoutes attaches GET /health.
func (s *Service) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/health", func(c *gin.Context) {
		st := s.Status(c.Request.Context())
		code := http.StatusOK
		if !st.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, st)
	})
}
