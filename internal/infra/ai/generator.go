// Package ai builds the review.Generator selected in configuration.
package ai

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/ai-code-reviewer/internal/config"
	"github.com/bryanwahyu/ai-code-reviewer/internal/domain/review"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai/gemini"
	"github.com/bryanwahyu/ai-code-reviewer/internal/infra/ai/openai"
)

// NewGenerator returns the provider adapter for cfg.Provider.
// A missing credential is reported here so the process fails at startup.
func NewGenerator(ctx context.Context, cfg config.AI) (review.Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GOOGLE_GEMINI_KEY is not set")
		}
		c, err := gemini.NewClient(ctx, cfg.GeminiKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider selected but OPENAI_API_KEY is not set")
		}
		return openai.NewClient(cfg.OpenAIKey, cfg.Model, cfg.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.Provider)
	}
}
