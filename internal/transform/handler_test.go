package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-roaster/internal/llm"
)

func newTestRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newTestService(t, client)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestHandlersRejectInvalidText(t *testing.T) {
	client := &fakeClient{reply: func(llm.Request) (string, error) { return "x", nil }}
	r := newTestRouter(t, client)

	cases := []struct {
		path string
		body string
		want string
	}{
		{"/roast", `{}`, "Please provide valid resume text to roast"},
		{"/analyze", `{"text":""}`, "Please provide valid resume text to analyze"},
		{"/rewrite", `{"text":42}`, "Please provide valid resume text to rewrite"},
		{"/roast", `not json`, "Please provide valid resume text to roast"},
	}
	for _, tc := range cases {
		resp := postJSON(r, tc.path, tc.body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", tc.path, tc.body, resp.Code)
		}
		var payload map[string]any
		_ = json.Unmarshal(resp.Body.Bytes(), &payload)
		if payload["message"] != tc.want {
			t.Fatalf("%s: unexpected message %v", tc.path, payload["message"])
		}
	}
	if len(client.requests) != 0 {
		t.Fatalf("expected no upstream calls, got %d", len(client.requests))
	}
}

func TestRoastHandlerSuccess(t *testing.T) {
	r := newTestRouter(t, &fakeClient{reply: func(llm.Request) (string, error) { return "Roasted.", nil }})

	resp := postJSON(r, "/roast", `{"text":"Go developer"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["message"] != "Resume roasted successfully" || payload["roast"] != "Roasted." {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestAnalyzeHandlerReturnsScores(t *testing.T) {
	r := newTestRouter(t, &fakeClient{reply: func(llm.Request) (string, error) { return "Clarity: 7/10", nil }})

	resp := postJSON(r, "/analyze", `{"text":"Go developer"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Message  string   `json:"message"`
		Analysis Analysis `json:"analysis"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Analysis.Scores.Clarity != 7 || payload.Analysis.Scores.Impact != 5 {
		t.Fatalf("unexpected scores %+v", payload.Analysis.Scores)
	}
	if payload.Message != "Resume analyzed successfully" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
}

func TestRewriteHandlerMapsQuotaTo503(t *testing.T) {
	r := newTestRouter(t, &fakeClient{reply: func(llm.Request) (string, error) {
		return "", &llm.Error{Kind: llm.KindQuota, Code: "insufficient_quota", Err: errors.New("quota")}
	}})

	resp := postJSON(r, "/rewrite", `{"text":"Go developer","preserveFormat":true,"originalFormat":"pdf"}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	var payload map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload["kind"] != "quota" {
		t.Fatalf("unexpected kind %v", payload["kind"])
	}
	if payload["message"] != "OpenAI API quota exceeded. Please try again later or contact support for assistance." {
		t.Fatalf("unexpected message %v", payload["message"])
	}
}

func TestRoastHandlerMapsRateLimitTo429(t *testing.T) {
	r := newTestRouter(t, &fakeClient{reply: func(llm.Request) (string, error) {
		return "", &llm.Error{Kind: llm.KindRateLimited, StatusCode: 429, Err: errors.New("slow")}
	}})

	resp := postJSON(r, "/roast", `{"text":"Go developer"}`)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}
