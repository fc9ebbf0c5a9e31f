// Package feedback turns drill summaries into short coaching notes using a language model.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/drillreport/internal/apperr"
	"github.com/verte-zerg/drillreport/internal/config"
	"github.com/verte-zerg/drillreport/internal/model"
	"github.com/verte-zerg/drillreport/internal/stats"
)

// Generator produces free text for a prompt.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Disabled is a Generator that always fails with apperr.ErrFeedbackDisabled.
type Disabled struct{}

func (Disabled) Name() string { return config.ProviderDisabled }

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", apperr.ErrFeedbackDisabled
}

// NewGenerator builds the configured provider.
func NewGenerator(ctx context.Context, cfg config.LLMSettings) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderOllama:
		return NewOllamaClient(cfg.BaseURL, cfg.Model, nil), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Timeout())
	case config.ProviderDisabled, "":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// Service applies the call timeout and error taxonomy around a Generator.
type Service struct {
	gen     Generator
	timeout time.Duration
}

// NewService wraps gen. A non-positive timeout leaves the caller's deadline in place.
func NewService(gen Generator, timeout time.Duration) *Service {
	if gen == nil {
		gen = Disabled{}
	}
	return &Service{gen: gen, timeout: timeout}
}

// Provider returns the name of the underlying generator.
func (s *Service) Provider() string {
	return s.gen.Name()
}

// Feedback returns the model's note for a mode summary. A nil summary yields the no-data text
// without calling the provider.
func (s *Service) Feedback(ctx context.Context, summary *stats.Summary, studentName string, mode model.Mode) (string, error) {
	if summary == nil {
		return stats.NoDataText(mode.Label()), nil
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	text, err := s.gen.Generate(ctx, BuildPrompt(summary, studentName, mode.Label()))
	if err != nil {
		return "", &apperr.FeedbackServiceError{Provider: s.gen.Name(), Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &apperr.FeedbackServiceError{Provider: s.gen.Name(), Err: errors.New("empty response")}
	}
	return text, nil
}
