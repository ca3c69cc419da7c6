package transform

import (
	"context"
	"strings"
	"time"

	"resume-roaster/internal/llm"
	"resume-roaster/internal/shared/metrics"
	"resume-roaster/internal/shared/telemetry"
)

// Service turns resume text into a roast, an analysis or a rewrite.
type Service struct {
	client  llm.Client
	prompts llm.Catalog
}

// NewService constructs a Service. A nil catalog uses the embedded prompts.
func NewService(client llm.Client, prompts llm.Catalog) (*Service, error) {
	if prompts == nil {
		var err error
		if prompts, err = llm.DefaultCatalog(); err != nil {
			return nil, err
		}
	}
	for _, op := range []Op{OpRoast, OpAnalyze, OpRewrite} {
		if _, err := prompts.Lookup(string(op)); err != nil {
			return nil, err
		}
	}
	return &Service{client: client, prompts: prompts}, nil
}

// Roast returns humorous commentary on the resume.
func (s *Service) Roast(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	p, _ := s.prompts.Lookup(string(OpRoast))
	out, err := s.complete(ctx, OpRoast, p, p.Render(map[string]string{"text": text}))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return fallbackRoast, nil
	}
	return out, nil
}

// Analyze scores the resume in five categories and returns feedback.
func (s *Service) Analyze(ctx context.Context, text string) (Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Analysis{}, ErrEmptyText
	}
	p, _ := s.prompts.Lookup(string(OpAnalyze))
	out, err := s.complete(ctx, OpAnalyze, p, p.Render(map[string]string{"text": text}))
	if err != nil {
		return Analysis{}, err
	}
	return parseAnalysis(out), nil
}

// Rewrite returns an improved version of the resume.
func (s *Service) Rewrite(ctx context.Context, text string, opts RewriteOptions) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	p, _ := s.prompts.Lookup(string(OpRewrite))
	instruction := p.Instruction
	if opts.PreserveFormat {
		instruction = p.InstructionPreserve
	}
	if opts.OriginalFormat != "" {
		telemetry.Info("ai.rewrite_format", map[string]any{
			"original_format": opts.OriginalFormat,
			"preserve_format": opts.PreserveFormat,
		})
	}
	prompt := p.Render(map[string]string{"instruction": instruction, "text": text})
	out, err := s.complete(ctx, OpRewrite, p, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return fallbackRewrite, nil
	}
	return out, nil
}

func (s *Service) complete(ctx context.Context, op Op, p llm.Prompt, prompt string) (string, error) {
	start := time.Now()
	out, err := s.client.Complete(ctx, llm.Request{
		Operation: string(op),
		Messages:  []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens: p.MaxTokens,
		JSON:      p.JSON,
	})
	if err != nil {
		kind := llm.KindOf(err)
		metrics.ObserveAICall(string(op), string(kind), time.Since(start))
		telemetry.Error("ai.failed", map[string]any{
			"operation": string(op),
			"kind":      string(kind),
			"err":       err,
		})
		return "", &Error{Op: op, Kind: kind, Err: err}
	}
	metrics.ObserveAICall(string(op), "ok", time.Since(start))
	return out, nil
}
