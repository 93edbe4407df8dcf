// Package openrouter is a minimal client for OpenRouter and other
// OpenAI-compatible chat completion endpoints.
//
// It sends a single non-streaming request per call and returns the first
// choice's content. Errors carry the provider's own message when the
// response body has one.
package openrouter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// ErrInvalidResponse is returned when a successful response carries no
// usable reply content.
var ErrInvalidResponse = errors.New("invalid response format from API")

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Status     string
	// Message is the provider's error.message, or a generic description
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	Temperature      float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32

	// Referer and Title are sent as HTTP-Referer and X-Title
	Referer string
	Title   string

	HTTPClient *http.Client
}

// Client implements the eino Generate call against /chat/completions.
type Client struct {
	config     Config
	endpoint   string
	httpClient *http.Client
}

// NewChatModel validates config and creates a Client.
func NewChatModel(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("openrouter: config is required")
	}
	if config.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	if config.Model == "" {
		return nil, errors.New("openrouter: model is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		config:     *config,
		endpoint:   strings.TrimRight(baseURL, "/") + "/chat/completions",
		httpClient: httpClient,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float32       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	FrequencyPenalty float32       `json:"frequency_penalty"`
	PresencePenalty  float32       `json:"presence_penalty"`
}

// Generate sends the messages and returns the assistant reply. Temperature,
// max tokens and model may be overridden per call with eino model options.
func (c *Client) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Temperature: &c.config.Temperature,
		MaxTokens:   &c.config.MaxTokens,
		Model:       &c.config.Model,
	}, opts...)

	req := chatRequest{
		Model:            *options.Model,
		Messages:         make([]chatMessage, 0, len(input)),
		Temperature:      *options.Temperature,
		MaxTokens:        *options.MaxTokens,
		FrequencyPenalty: c.config.FrequencyPenalty,
		PresencePenalty:  c.config.PresencePenalty,
	}
	for _, msg := range input {
		req.Messages = append(req.Messages, chatMessage{Role: string(msg.Role), Content: msg.Content})
	}

	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	if c.config.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.config.Referer)
	}
	if c.config.Title != "" {
		httpReq.Header.Set("X-Title", c.config.Title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp, data)
	}

	content := gjson.GetBytes(data, "choices.0.message.content")
	if content.Type != gjson.String || content.String() == "" {
		return nil, ErrInvalidResponse
	}

	reply := &schema.Message{
		Role:    schema.Assistant,
		Content: content.String(),
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: gjson.GetBytes(data, "choices.0.finish_reason").String(),
		},
	}
	if usage := gjson.GetBytes(data, "usage"); usage.Exists() {
		reply.ResponseMeta.Usage = &schema.TokenUsage{
			PromptTokens:     int(usage.Get("prompt_tokens").Int()),
			CompletionTokens: int(usage.Get("completion_tokens").Int()),
			TotalTokens:      int(usage.Get("total_tokens").Int()),
		}
	}
	return reply, nil
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Status: resp.Status}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		apiErr.Message = msg.String()
		return apiErr
	}

	text := http.StatusText(resp.StatusCode)
	if text == "" {
		text = "Failed to get response from AI"
	}
	apiErr.Message = fmt.Sprintf("API Error (%d): %s", resp.StatusCode, text)
	return apiErr
}

// GetType identifies the model implementation.
func (c *Client) GetType() string {
	return "OpenRouter"
}
