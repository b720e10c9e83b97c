package ai

import (
	"fmt"

	"github.com/NoamFav/EnronBox/pkg/enron"
)

// Config holds provider configuration. The Ollama getters are dynamic
// so the runtime settings endpoints can repoint the fallback without a
// restart.
type Config struct {
	Provider ProviderType

	Backend *enron.Client

	GetOllamaBaseURL func() string
	GetOllamaModel   func() string
}

// NewService creates a Service based on the config. This is the factory
// function - switch providers by changing config.Provider.
func NewService(cfg Config) (Service, error) {
	newOllama := func() *OllamaService {
		return NewOllamaServiceWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel)
	}

	switch cfg.Provider {
	case ProviderBackend:
		if cfg.Backend == nil {
			return nil, fmt.Errorf("backend client is required for backend provider")
		}
		return NewBackendService(cfg.Backend), nil

	case ProviderOllama:
		return newOllama(), nil

	default:
		// Auto: backend with Ollama fallback when both are configured.
		if cfg.Backend == nil {
			return newOllama(), nil
		}
		return NewFallbackService(NewBackendService(cfg.Backend), newOllama()), nil
	}
}
