package providers

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/providers/anthropic"
	"github.com/ido-cryptoson/geo-platform/internal/providers/mock"
	"github.com/ido-cryptoson/geo-platform/internal/providers/openai"
	"github.com/ido-cryptoson/geo-platform/internal/providers/perplexity"
)

// NewProvider creates the appropriate AI provider for a platform identifier.
// With UseMockResponses set, every platform is served canned responses so the
// whole pipeline runs without API keys.
func NewProvider(platform string, cfg *config.Config) (AIProvider, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	platformLower := strings.ToLower(platform)

	if cfg.UseMockResponses {
		logrus.Debugf("[ProviderFactory] Using mock provider for platform: %s", platform)
		return mock.NewProvider(platformLower), nil
	}

	if strings.Contains(platformLower, "chatgpt") || strings.Contains(platformLower, "gpt") {
		logrus.Infof("[ProviderFactory] Selected OpenAI provider for platform: %s", platform)
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is empty in config")
		}
		return openai.NewProvider(cfg), nil
	}

	if strings.Contains(platformLower, "claude") || strings.Contains(platformLower, "anthropic") {
		logrus.Infof("[ProviderFactory] Selected Anthropic provider for platform: %s", platform)
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic API key is empty in config")
		}
		return anthropic.NewProvider(cfg), nil
	}

	if strings.Contains(platformLower, "perplexity") || strings.Contains(platformLower, "sonar") {
		logrus.Infof("[ProviderFactory] Selected Perplexity provider for platform: %s", platform)
		if cfg.PerplexityAPIKey == "" {
			return nil, fmt.Errorf("perplexity API key is empty in config")
		}
		return perplexity.NewProvider(cfg), nil
	}

	return nil, fmt.Errorf("unsupported platform: %s", platform)
}
