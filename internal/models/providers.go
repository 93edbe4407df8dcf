package models

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ramizpolic/islamicai/internal/auth"
	"github.com/ramizpolic/islamicai/internal/models/google"
	"github.com/ramizpolic/islamicai/internal/models/huggingface"
	"github.com/ramizpolic/islamicai/internal/models/mock"
	"github.com/ramizpolic/islamicai/internal/models/openai"
	"github.com/ramizpolic/islamicai/internal/models/openrouter"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "openrouter:google/gemini-2.5-flash-preview-05-20"

	DefaultTemperature      float32 = 0.1
	DefaultMaxTokens                = 4000
	DefaultFrequencyPenalty float32 = 0.1
	DefaultPresencePenalty  float32 = 0.1

	// DefaultTitle and DefaultReferer are sent as attribution headers to
	// OpenRouter-compatible endpoints.
	DefaultTitle   = "Islamic AI Assistant"
	DefaultReferer = "https://github.com/ramizpolic/islamicai"
)

// ChatModel is the single operation the assistant needs from a backend.
// Every eino chat model satisfies it.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// ProviderConfig holds the configuration for creating a chat model.
type ProviderConfig struct {
	// ModelString is "provider:model", e.g. "openrouter:google/gemini-2.5-flash"
	ModelString string
	// ProviderAPIKey overrides the provider's environment variables
	ProviderAPIKey string
	// ProviderURL overrides the provider's base URL
	ProviderURL string

	Temperature      *float32
	MaxTokens        int
	FrequencyPenalty *float32
	PresencePenalty  *float32

	// TLSSkipVerify disables certificate verification for self-hosted endpoints
	TLSSkipVerify bool

	// Referer and Title are attribution headers for OpenRouter-compatible APIs
	Referer string
	Title   string
}

// ProviderResult is the chat model together with what was resolved while
// creating it.
type ProviderResult struct {
	Model    ChatModel
	Provider string
	ModelID  string
	// Info holds pricing for well-known models, nil otherwise
	Info *ModelInfo
}

// ParseModelString splits "provider:model" into its parts.
func ParseModelString(modelString string) (provider, modelName string, err error) {
	provider, modelName, ok := strings.Cut(modelString, ":")
	if !ok || provider == "" || modelName == "" {
		return "", "", fmt.Errorf("invalid model format %q, expected provider:model", modelString)
	}
	return provider, modelName, nil
}

// CreateProvider creates a chat model for the provider named in
// config.ModelString. An empty model string selects DefaultModel.
func CreateProvider(ctx context.Context, config *ProviderConfig) (*ProviderResult, error) {
	if config.ModelString == "" {
		config.ModelString = DefaultModel
	}
	provider, modelName, err := ParseModelString(config.ModelString)
	if err != nil {
		return nil, err
	}

	registry := GetGlobalRegistry()
	if _, err := registry.GetProvider(provider); err != nil && provider != "gemini" && provider != "hf" {
		return nil, err
	}

	var chatModel ChatModel
	switch provider {
	case "openrouter":
		chatModel, err = createOpenRouterProvider(ctx, config, modelName)
	case "openai":
		chatModel, err = createOpenAIProvider(ctx, config, modelName)
	case "anthropic":
		chatModel, err = createAnthropicProvider(ctx, config, modelName)
	case "huggingface", "hf":
		provider = "huggingface"
		chatModel, err = createHuggingFaceProvider(ctx, config, modelName)
	case "ollama":
		chatModel, err = createOllamaProvider(ctx, config, modelName)
	case "google", "gemini":
		provider = "google"
		chatModel, err = createGoogleProvider(ctx, config, modelName)
	case "mock":
		chatModel = mock.New()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}

	info, _ := registry.LookupModel(provider, modelName)
	return &ProviderResult{
		Model:    chatModel,
		Provider: provider,
		ModelID:  modelName,
		Info:     info,
	}, nil
}

// resolveAPIKey returns the configured key, else the key stored with
// "islamicai auth login", else the first non-empty environment variable
// registered for the provider.
func resolveAPIKey(config *ProviderConfig, provider, displayName string) (string, error) {
	if config.ProviderAPIKey != "" {
		return config.ProviderAPIKey, nil
	}
	if key := auth.StoredAPIKey(provider); key != "" {
		log.Debug("using stored API key", "provider", provider)
		return key, nil
	}
	vars, err := GetGlobalRegistry().GetRequiredEnvVars(provider)
	if err != nil {
		return "", err
	}
	if key := lookupEnvKey(vars); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%s API key not provided. Use --provider-api-key flag, 'islamicai auth login %s' or %s environment variable",
		displayName, provider, strings.Join(vars, "/"))
}

func withDefaults(config *ProviderConfig) (temperature float32, maxTokens int, frequency, presence float32) {
	temperature, maxTokens = DefaultTemperature, DefaultMaxTokens
	frequency, presence = DefaultFrequencyPenalty, DefaultPresencePenalty
	if config.Temperature != nil {
		temperature = *config.Temperature
	}
	if config.MaxTokens > 0 {
		maxTokens = config.MaxTokens
	}
	if config.FrequencyPenalty != nil {
		frequency = *config.FrequencyPenalty
	}
	if config.PresencePenalty != nil {
		presence = *config.PresencePenalty
	}
	return
}

func attribution(config *ProviderConfig) (referer, title string) {
	referer, title = DefaultReferer, DefaultTitle
	if config.Referer != "" {
		referer = config.Referer
	}
	if config.Title != "" {
		title = config.Title
	}
	return
}

func createOpenRouterProvider(_ context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	apiKey, err := resolveAPIKey(config, "openrouter", "OpenRouter")
	if err != nil {
		return nil, err
	}

	temperature, maxTokens, frequency, presence := withDefaults(config)
	referer, title := attribution(config)

	return openrouter.NewChatModel(&openrouter.Config{
		APIKey:           apiKey,
		BaseURL:          config.ProviderURL,
		Model:            modelName,
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		FrequencyPenalty: frequency,
		PresencePenalty:  presence,
		Referer:          referer,
		Title:            title,
		HTTPClient:       createHTTPClientWithTLSConfig(config.TLSSkipVerify),
	})
}

func createOpenAIProvider(ctx context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	apiKey, err := resolveAPIKey(config, "openai", "OpenAI")
	if err != nil {
		return nil, err
	}

	temperature, maxTokens, frequency, presence := withDefaults(config)
	referer, title := attribution(config)

	openaiConfig := &einoopenai.ChatModelConfig{
		APIKey:           apiKey,
		Model:            modelName,
		MaxTokens:        &maxTokens,
		Temperature:      &temperature,
		FrequencyPenalty: &frequency,
		PresencePenalty:  &presence,
		HTTPClient:       createHTTPClientWithTLSConfig(config.TLSSkipVerify),
	}
	if config.ProviderURL != "" {
		openaiConfig.BaseURL = config.ProviderURL
	}

	return openai.NewCustomChatModel(ctx, openaiConfig, openai.Attribution{
		Referer: referer,
		Title:   title,
	})
}

func createAnthropicProvider(ctx context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	apiKey, err := resolveAPIKey(config, "anthropic", "Anthropic")
	if err != nil {
		return nil, err
	}

	temperature, maxTokens, _, _ := withDefaults(config)

	claudeConfig := &claude.Config{
		APIKey:      apiKey,
		Model:       modelName,
		MaxTokens:   maxTokens,
		Temperature: &temperature,
		HTTPClient:  createHTTPClientWithTLSConfig(config.TLSSkipVerify),
	}
	if config.ProviderURL != "" {
		claudeConfig.BaseURL = &config.ProviderURL
	}

	return claude.NewChatModel(ctx, claudeConfig)
}

func createHuggingFaceProvider(ctx context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	apiKey, err := resolveAPIKey(config, "huggingface", "Hugging Face")
	if err != nil {
		return nil, err
	}

	temperature, maxTokens, frequency, presence := withDefaults(config)

	return huggingface.NewChatModel(ctx, &einoopenai.ChatModelConfig{
		APIKey:           apiKey,
		BaseURL:          config.ProviderURL,
		Model:            modelName,
		MaxTokens:        &maxTokens,
		Temperature:      &temperature,
		FrequencyPenalty: &frequency,
		PresencePenalty:  &presence,
		HTTPClient:       createHTTPClientWithTLSConfig(config.TLSSkipVerify),
	})
}

func createOllamaProvider(ctx context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	baseURL := "http://localhost:11434"
	if config.ProviderURL != "" {
		baseURL = config.ProviderURL
	}

	return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   modelName,
	})
}

func createGoogleProvider(ctx context.Context, config *ProviderConfig, modelName string) (ChatModel, error) {
	apiKey, err := resolveAPIKey(config, "google", "Google")
	if err != nil {
		return nil, err
	}

	temperature, maxTokens, frequency, presence := withDefaults(config)

	return google.NewChatModel(ctx, &google.Config{
		APIKey:           apiKey,
		Model:            modelName,
		Temperature:      temperature,
		MaxTokens:        maxTokens,
		FrequencyPenalty: frequency,
		PresencePenalty:  presence,
		HTTPClient:       createHTTPClientWithTLSConfig(config.TLSSkipVerify),
	})
}

// createHTTPClientWithTLSConfig returns a client whose transport is a clone
// of the default one, with certificate verification disabled on request.
func createHTTPClientWithTLSConfig(skipVerify bool) *http.Client {
	if !skipVerify {
		return &http.Client{}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: true,
	}
	return &http.Client{Transport: transport}
}
