package llm

import (
	"fmt"

	"github.com/tbourn/go-support-chat/internal/config"
)

// NewFromConfig builds the Completion for the configured provider.
func NewFromConfig(cfg config.LLMConfig) (*Completion, error) {
	var client Client
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client = NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.OpenRouterReferrer, cfg.OpenRouterTitle)
	case config.ProviderYandex:
		client = NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = config.DefaultSystemPrompt
	}
	return &Completion{Client: client, SystemPrompt: prompt, Provider: cfg.Provider}, nil
}
