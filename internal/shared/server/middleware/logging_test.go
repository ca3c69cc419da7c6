package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.POST("/api/roast", func(c *gin.Context) {
		c.Set("aiOperation", "roast")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/api/roast", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json %q: %v", last, err)
	}

	for _, key := range []string{"request_id", "method", "route", "status", "duration_ms", "ai_operation"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["ai_operation"] != "roast" {
		t.Fatalf("unexpected ai_operation: %v", payload["ai_operation"])
	}
	if payload["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected status: %v", payload["status"])
	}
	if got := resp.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var seen string
	router.GET("/x", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusNoContent)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" {
		t.Fatalf("expected generated request id")
	}
	if resp.Header().Get("X-Request-Id") != seen {
		t.Fatalf("expected header %q, got %q", seen, resp.Header().Get("X-Request-Id"))
	}
}

func TestRecoveryReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["code"] != "internal" {
		t.Fatalf("unexpected code: %v", payload["code"])
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Fatalf("expected panic value in logs")
	}
}
