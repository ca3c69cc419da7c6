package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/contact"
	"resume-roaster/internal/export"
	"resume-roaster/internal/resumes"
	"resume-roaster/internal/services/health"
	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/metrics"
	"resume-roaster/internal/shared/server/middleware"
	"resume-roaster/internal/transform"
)

const (
	rateGroupAI      = "AI"
	rateGroupDefault = "DEFAULT"
)

// RouterDeps lists the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	Health           *health.Service
	ResumeHandler    *resumes.Handler
	TransformHandler *transform.Handler
	ContactHandler   *contact.Handler
	ExportHandler    *export.Handler
	RateLimiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Metrics(),
	)

	r.GET("/metrics", metrics.Handler())

	limited := r.Group("")
	limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupAI:      middleware.PerMinute(cfg.RateLimitAIPerMin, cfg.RateLimitAIBurst),
			rateGroupDefault: middleware.PerMinute(cfg.RateLimitDefaultPerMin, cfg.RateLimitDefaultBurst),
		},
	}))

	api := limited.Group("/api")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.ContactHandler != nil {
		deps.ContactHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
	}
	if deps.TransformHandler != nil {
		deps.TransformHandler.RegisterRoutes(limited)
	}

	return r
}

// rateGroupFor puts the model-backed routes in the stricter bucket.
func rateGroupFor(c *gin.Context) string {
	switch strings.TrimSuffix(c.FullPath(), "/") {
	case "/roast", "/analyze", "/rewrite":
		return rateGroupAI
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
