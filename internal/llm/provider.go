package llm

import (
	"context"
	"fmt"

	"ai-grocery-list/internal/config"
)

// NewFromConfig returns the text generator selected by cfg.LLMProvider.
// The caller must Close the returned generator if it implements Closer.
func NewFromConfig(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGroq:
		return NewGroqClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}
