package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/trivia/internal/logging"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → provider.
func NewProvider(ctx context.Context, cfg Config, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	pc := cfg.Selected()
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(pc)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(pc)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, pc)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(pc)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	if log == nil {
		log = logging.Nop()
	}
	return WithRetry(WithLogging(base, log), cfg.Retry), nil
}
