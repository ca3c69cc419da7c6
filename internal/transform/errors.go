package transform

import (
	"errors"
	"fmt"
	"net/http"

	"resume-roaster/internal/llm"
)

// Op names a transform operation.
type Op string

const (
	OpRoast   Op = "roast"
	OpAnalyze Op = "analyze"
	OpRewrite Op = "rewrite"
)

// ErrEmptyText is returned when no resume text was supplied.
var ErrEmptyText = errors.New("resume text is required")

// Error is an upstream AI failure for one operation.
type Error struct {
	Op   Op
	Kind llm.Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the user-facing text for the failure.
func (e *Error) Message() string {
	switch e.Kind {
	case llm.KindQuota:
		return "OpenAI API quota exceeded. Please try again later or contact support for assistance."
	case llm.KindRateLimited:
		return "Too many requests to AI service. Please try again in a few moments."
	}
	switch e.Op {
	case OpRoast:
		return "Failed to generate resume roast. Please try again later."
	case OpAnalyze:
		return "Failed to analyze resume. Please try again later."
	case OpRewrite:
		return "Failed to rewrite resume. Please try again later."
	default:
		return "AI request failed. Please try again later."
	}
}

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case llm.KindRateLimited:
		return http.StatusTooManyRequests
	case llm.KindQuota, llm.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
