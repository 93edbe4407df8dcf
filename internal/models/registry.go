package models

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ModelInfo describes a model's pricing and context window. Costs are in
// US dollars per million tokens.
type ModelInfo struct {
	ID    string
	Name  string
	Cost  Cost
	Limit Limit
}

// Cost holds per-million-token prices.
type Cost struct {
	Input  float64
	Output float64
}

// Limit holds token limits.
type Limit struct {
	Context int
	Output  int
}

// ProviderInfo describes a chat-completion backend.
type ProviderInfo struct {
	// ID is the prefix used in model strings, e.g. "openrouter"
	ID string
	// Name is the human readable provider name
	Name string
	// Env lists the environment variables checked for an API key, in order
	Env []string
	// RequiresKey is false for local providers
	RequiresKey bool
	// Models lists the models with known pricing
	Models map[string]ModelInfo
}

// ModelsRegistry knows which providers are supported, where their
// credentials come from and what their well-known models cost.
type ModelsRegistry struct {
	providers map[string]ProviderInfo
}

// NewModelsRegistry creates a registry populated with the built-in
// provider table.
func NewModelsRegistry() *ModelsRegistry {
	return &ModelsRegistry{
		providers: providersData(),
	}
}

func providersData() map[string]ProviderInfo {
	return map[string]ProviderInfo{
		"openrouter": {
			ID:          "openrouter",
			Name:        "OpenRouter",
			Env:         []string{"OPENROUTER_API_KEY"},
			RequiresKey: true,
			Models: map[string]ModelInfo{
				"google/gemini-2.5-flash-preview-05-20": {
					ID:    "google/gemini-2.5-flash-preview-05-20",
					Name:  "Gemini 2.5 Flash Preview 05-20",
					Cost:  Cost{Input: 0.15, Output: 0.60},
					Limit: Limit{Context: 1048576, Output: 65535},
				},
				"google/gemini-2.5-flash": {
					ID:    "google/gemini-2.5-flash",
					Name:  "Gemini 2.5 Flash",
					Cost:  Cost{Input: 0.30, Output: 2.50},
					Limit: Limit{Context: 1048576, Output: 65535},
				},
			},
		},
		"openai": {
			ID:          "openai",
			Name:        "OpenAI",
			Env:         []string{"OPENAI_API_KEY"},
			RequiresKey: true,
			Models: map[string]ModelInfo{
				"gpt-4o-mini": {
					ID:    "gpt-4o-mini",
					Name:  "GPT-4o mini",
					Cost:  Cost{Input: 0.15, Output: 0.60},
					Limit: Limit{Context: 128000, Output: 16384},
				},
				"gpt-4o": {
					ID:    "gpt-4o",
					Name:  "GPT-4o",
					Cost:  Cost{Input: 2.50, Output: 10.00},
					Limit: Limit{Context: 128000, Output: 16384},
				},
			},
		},
		"anthropic": {
			ID:          "anthropic",
			Name:        "Anthropic",
			Env:         []string{"ANTHROPIC_API_KEY"},
			RequiresKey: true,
			Models: map[string]ModelInfo{
				"claude-3-5-haiku-latest": {
					ID:    "claude-3-5-haiku-latest",
					Name:  "Claude Haiku 3.5",
					Cost:  Cost{Input: 0.80, Output: 4.00},
					Limit: Limit{Context: 200000, Output: 8192},
				},
			},
		},
		"google": {
			ID:          "google",
			Name:        "Google",
			Env:         []string{"GOOGLE_API_KEY", "GEMINI_API_KEY", "GOOGLE_GENERATIVE_AI_API_KEY"},
			RequiresKey: true,
			Models: map[string]ModelInfo{
				"gemini-2.5-flash": {
					ID:    "gemini-2.5-flash",
					Name:  "Gemini 2.5 Flash",
					Cost:  Cost{Input: 0.30, Output: 2.50},
					Limit: Limit{Context: 1048576, Output: 65536},
				},
			},
		},
		"huggingface": {
			ID:          "huggingface",
			Name:        "Hugging Face",
			Env:         []string{"HF_TOKEN", "HUGGINGFACE_API_KEY"},
			RequiresKey: true,
		},
		"ollama": {
			ID:   "ollama",
			Name: "Ollama",
		},
		"mock": {
			ID:   "mock",
			Name: "Offline mock",
		},
	}
}

// GetProvider returns the provider with the given ID.
func (r *ModelsRegistry) GetProvider(provider string) (ProviderInfo, error) {
	info, ok := r.providers[provider]
	if !ok {
		return ProviderInfo{}, fmt.Errorf("unsupported provider: %s", provider)
	}
	return info, nil
}

// LookupModel returns pricing information for a model when it is known.
// Unknown models are not an error; they simply have no pricing.
func (r *ModelsRegistry) LookupModel(provider, modelID string) (*ModelInfo, bool) {
	info, ok := r.providers[provider]
	if !ok {
		return nil, false
	}
	model, ok := info.Models[modelID]
	if !ok {
		return nil, false
	}
	return &model, true
}

// GetRequiredEnvVars returns the environment variables checked for the
// provider's API key.
//
// For "google" this is GOOGLE_API_KEY, GEMINI_API_KEY and
// GOOGLE_GENERATIVE_AI_API_KEY.
func (r *ModelsRegistry) GetRequiredEnvVars(provider string) ([]string, error) {
	info, err := r.GetProvider(provider)
	if err != nil {
		return nil, err
	}
	return info.Env, nil
}

// ValidateEnvironment checks that a key is available for the provider,
// either passed explicitly or through one of its environment variables.
func (r *ModelsRegistry) ValidateEnvironment(provider string, apiKey string) error {
	info, err := r.GetProvider(provider)
	if err != nil {
		return err
	}
	if !info.RequiresKey || apiKey != "" {
		return nil
	}
	if lookupEnvKey(info.Env) != "" {
		return nil
	}
	return fmt.Errorf("missing required environment variables for %s: %s (at least one required)",
		provider, strings.Join(info.Env, ", "))
}

// GetSupportedProviders returns the provider IDs in alphabetical order.
func (r *ModelsRegistry) GetSupportedProviders() []string {
	providers := make([]string, 0, len(r.providers))
	for id := range r.providers {
		providers = append(providers, id)
	}
	sort.Strings(providers)
	return providers
}

func lookupEnvKey(vars []string) string {
	for _, name := range vars {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

var globalRegistry = NewModelsRegistry()

// GetGlobalRegistry returns the shared registry instance.
func GetGlobalRegistry() *ModelsRegistry {
	return globalRegistry
}
