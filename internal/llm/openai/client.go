package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"resume-roaster/internal/llm"
	"resume-roaster/internal/shared/telemetry"
)

var apiURL = "https://api.openai.com/v1/chat/completions"

const (
	codeInsufficientQuota = "insufficient_quota"
	maxErrorBody          = 64 << 10
)

// Options tunes the HTTP client and circuit breaker.
type Options struct {
	Timeout time.Duration
	// BreakerTrips is the number of consecutive transient failures that open the breaker.
	BreakerTrips   uint32
	BreakerTimeout time.Duration
}

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[string]
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, opts Options) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.BreakerTrips == 0 {
		opts.BreakerTrips = 5
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = 30 * time.Second
	}

	trips := opts.BreakerTrips
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "openai",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trips
		},
		IsSuccessful: func(err error) bool {
			return err == nil || llm.KindOf(err) != llm.KindTransient
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			telemetry.Warn("llm.breaker_state", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: opts.Timeout},
		breaker:    breaker,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

// Complete sends one chat completion. An empty completion is returned as ""
// with a nil error. Failures are *llm.Error values; an open breaker is transient.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	out, err := c.breaker.Execute(func() (string, error) {
		return c.completeOnce(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &llm.Error{Kind: llm.KindTransient, Err: err}
		}
		return "", err
	}
	return out, nil
}

func (c *Client) completeOnce(ctx context.Context, req llm.Request) (string, error) {
	reqBody := chatRequest{
		Model:     c.model,
		Messages:  make([]chatMessage, 0, len(req.Messages)),
		MaxTokens: req.MaxTokens,
	}
	for _, m := range req.Messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	if req.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &llm.Error{Kind: llm.KindUnknown, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", &llm.Error{Kind: llm.KindUnknown, Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", classifyStatus(resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &llm.Error{Kind: llm.KindUnknown, StatusCode: resp.StatusCode, Err: fmt.Errorf("openai response parse: %w", err)}
	}
	if parsed.Error != nil {
		return "", apiErrorToLLM(resp.StatusCode, parsed.Error)
	}
	if len(parsed.Choices) == 0 {
		return "", &llm.Error{Kind: llm.KindUnknown, StatusCode: resp.StatusCode, Err: errors.New("openai response missing choices")}
	}

	logUsage(c.model, req.Operation, time.Since(start), parsed)
	return parsed.Choices[0].Message.Content, nil
}

func classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &llm.Error{Kind: llm.KindUnknown, Err: err}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &llm.Error{Kind: llm.KindTransient, Err: fmt.Errorf("openai request timeout: %w", err)}
	}
	return &llm.Error{Kind: llm.KindTransient, Err: err}
}

func classifyStatus(status int, body []byte) error {
	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return apiErrorToLLM(status, envelope.Error)
	}
	return &llm.Error{Kind: kindForStatus(status), StatusCode: status, Err: fmt.Errorf("openai status %d", status)}
}

func apiErrorToLLM(status int, e *apiError) error {
	kind := kindForStatus(status)
	if e.Code == codeInsufficientQuota || e.Type == codeInsufficientQuota {
		kind = llm.KindQuota
	}
	return &llm.Error{
		Kind:       kind,
		StatusCode: status,
		Code:       e.Code,
		Err:        fmt.Errorf("openai error: %s (%s)", e.Message, e.Type),
	}
}

func kindForStatus(status int) llm.Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return llm.KindRateLimited
	case status == http.StatusRequestTimeout, status >= 500:
		return llm.KindTransient
	default:
		return llm.KindUnknown
	}
}

func logUsage(model, operation string, latency time.Duration, resp chatResponse) {
	fields := map[string]any{
		"model":      model,
		"operation":  operation,
		"latency_ms": latency.Milliseconds(),
	}
	if len(resp.Choices) > 0 {
		fields["finish_reason"] = resp.Choices[0].FinishReason
	}
	if resp.Usage != nil {
		fields["prompt_tokens"] = resp.Usage.PromptTokens
		fields["completion_tokens"] = resp.Usage.CompletionTokens
		fields["total_tokens"] = resp.Usage.TotalTokens
	}
	telemetry.Info("llm.response", fields)
}

var _ llm.Client = (*Client)(nil)
