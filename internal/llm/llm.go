package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Message is one chat message.
type Message struct {
	Role    string
	Content string
}

// Request is a single completion call.
type Request struct {
	// Operation names the caller (roast, analyze, rewrite) for logs and metrics.
	Operation string
	Messages  []Message
	MaxTokens int
	// JSON asks the provider for a JSON object response.
	JSON bool
}

// Kind classifies provider failures.
type Kind string

const (
	KindQuota       Kind = "quota"
	KindRateLimited Kind = "rate_limited"
	KindTransient   Kind = "transient"
	KindUnknown     Kind = "unknown"
)

// Error is a classified provider failure.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the classification of err, KindUnknown when unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	return KindUnknown
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", &Error{Kind: KindUnknown, Err: ErrNotImplemented}
}
