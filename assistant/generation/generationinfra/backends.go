package generationinfra

import (
	"context"
	"io"

	"github.com/Abraxas-365/resumegpt/assistant/generation"
	"github.com/Abraxas-365/resumegpt/pkg/config"
	"github.com/Abraxas-365/resumegpt/pkg/logx"
)

// NewBackends builds the backends named in cfg.Order that have an API key.
// The returned closers must be closed on shutdown.
func NewBackends(ctx context.Context, cfg config.LLMConfig) ([]generation.Backend, []io.Closer, error) {
	var (
		backends []generation.Backend
		closers  []io.Closer
	)
	seen := make(map[string]bool)

	for _, name := range cfg.Order {
		if seen[name] {
			continue
		}
		seen[name] = true

		defaults := generation.Options{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

		switch name {
		case "deepseek":
			if cfg.DeepSeekAPIKey == "" {
				logx.Warn("DEEPSEEK_API_KEY not set, deepseek backend disabled")
				continue
			}
			defaults.Model = cfg.DeepSeekModel
			backends = append(backends, NewOpenAIBackend("deepseek", cfg.DeepSeekAPIKey, cfg.DeepSeekBaseURL, defaults))

		case "openai":
			if cfg.OpenAIAPIKey == "" {
				logx.Warn("OPENAI_API_KEY not set, openai backend disabled")
				continue
			}
			defaults.Model = cfg.OpenAIModel
			backends = append(backends, NewOpenAIBackend("openai", cfg.OpenAIAPIKey, "", defaults))

		case "anthropic":
			if cfg.AnthropicAPIKey == "" {
				logx.Debug("ANTHROPIC_API_KEY not set, anthropic backend disabled")
				continue
			}
			defaults.Model = cfg.AnthropicModel
			backends = append(backends, NewAnthropicBackend(cfg.AnthropicAPIKey, defaults))

		case "gemini":
			if cfg.GeminiAPIKey == "" {
				logx.Debug("GEMINI_API_KEY not set, gemini backend disabled")
				continue
			}
			defaults.Model = cfg.GeminiModel
			g, err := NewGeminiBackend(ctx, cfg.GeminiAPIKey, defaults)
			if err != nil {
				for _, c := range closers {
					c.Close()
				}
				return nil, nil, err
			}
			backends = append(backends, g)
			closers = append(closers, g)

		default:
			logx.Warnf("Unknown LLM backend %q in LLM_ORDER, ignoring", name)
		}
	}

	return backends, closers, nil
}
