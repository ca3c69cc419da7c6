package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultContactEmail = "contact@resume-roaster.app"

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	UploadsDir      string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string
	// Zero pool values keep the per-process defaults.
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBConnMaxIdleTime time.Duration
	DBPingTimeout     time.Duration

	LLMProvider    string
	LLMModel       string
	OpenAIAPIKey   string
	OpenAITimeout  time.Duration
	BreakerTrips   uint32
	BreakerTimeout time.Duration

	ResendAPIKey string
	ContactEmail string
	ContactFrom  string

	UploadRetention     time.Duration
	UploadSweepInterval time.Duration

	RateLimitAIPerMin      float64
	RateLimitAIBurst       int
	RateLimitDefaultPerMin float64
	RateLimitDefaultBurst  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is empty in production; resume records will not survive restarts")
	}

	return Config{
		Port:            getEnv("PORT", "5000"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		UploadsDir:      getEnv("UPLOADS_DIR", "./uploads"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", "uploads"),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		DatabaseURL:       dbURL,
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 0),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 0),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 0),
		DBConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 0),
		DBPingTimeout:     getEnvDuration("DB_PING_TIMEOUT", 0),

		LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAITimeout:  time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 120)) * time.Second,
		BreakerTrips:   uint32(getEnvInt("LLM_BREAKER_CONSECUTIVE_FAILURES", 5)),
		BreakerTimeout: getEnvDuration("LLM_BREAKER_OPEN_TIMEOUT", 30*time.Second),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		ContactEmail: getEnv("CONTACT_EMAIL", defaultContactEmail),
		ContactFrom:  getEnv("CONTACT_FROM", "Resume Roaster <onboarding@resend.dev>"),

		UploadRetention:     getEnvDuration("UPLOAD_RETENTION", 24*time.Hour),
		UploadSweepInterval: getEnvDuration("UPLOAD_SWEEP_INTERVAL", time.Hour),

		RateLimitAIPerMin:      getEnvFloat("RATE_LIMIT_AI_PER_MIN", 10),
		RateLimitAIBurst:       getEnvInt("RATE_LIMIT_AI_BURST", 5),
		RateLimitDefaultPerMin: getEnvFloat("RATE_LIMIT_DEFAULT_PER_MIN", 60),
		RateLimitDefaultBurst:  getEnvInt("RATE_LIMIT_DEFAULT_BURST", 20),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid number %q, using %v", key, raw, def)
		return def
	}
	return val
}

// getEnvDuration accepts Go durations ("90m") or plain seconds ("3600").
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val < 0 {
		log.Printf("config %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
