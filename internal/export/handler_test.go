package export

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/shared/telemetry"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	restore := telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(restore)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler().RegisterRoutes(r.Group("/api"))
	return r
}

func postExport(r *gin.Engine, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/export", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestExportHandlerServesAttachment(t *testing.T) {
	r := newTestRouter(t)

	resp := postExport(r, map[string]any{"text": "Jane Doe\nEngineer", "format": "docx", "fileName": "jane.pdf"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Disposition"); got != `attachment; filename="jane.docx"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := resp.Header().Get("Content-Type"); got != contentTypes[FormatDOCX] {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected zip payload")
	}
}

func TestExportHandlerValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []map[string]any{
		{"format": "pdf"},
		{"text": 42, "format": "pdf"},
		{"text": "   ", "format": "pdf"},
		{"text": "Jane", "format": "odt"},
	}
	for _, body := range cases {
		if resp := postExport(r, body); resp.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", body, resp.Code)
		}
	}
}
