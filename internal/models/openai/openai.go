package openai

import (
	"context"
	"net/http"
	"strings"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Attribution identifies the application to OpenAI-compatible gateways
// that rank or bill by caller, such as OpenRouter.
type Attribution struct {
	Referer string
	Title   string
}

// CustomChatModel wraps the eino-ext OpenAI model so that every chat
// completion request carries the attribution headers.
type CustomChatModel struct {
	// wrapped is the underlying eino-ext OpenAI model instance
	wrapped *einoopenai.ChatModel
}

// CustomRoundTripper stamps HTTP-Referer and X-Title on chat completion
// requests before handing them to the wrapped transport.
type CustomRoundTripper struct {
	// wrapped is the underlying HTTP transport to use for actual requests
	wrapped     http.RoundTripper
	attribution Attribution
}

// NewCustomChatModel creates a new OpenAI chat model whose transport adds
// the given attribution headers. A nil HTTP client in config is replaced
// with one using the default transport.
func NewCustomChatModel(ctx context.Context, config *einoopenai.ChatModelConfig, attribution Attribution) (*CustomChatModel, error) {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}

	if config.HTTPClient.Transport == nil {
		config.HTTPClient.Transport = http.DefaultTransport
	}
	config.HTTPClient.Transport = &CustomRoundTripper{
		wrapped:     config.HTTPClient.Transport,
		attribution: attribution,
	}

	wrapped, err := einoopenai.NewChatModel(ctx, config)
	if err != nil {
		return nil, err
	}

	return &CustomChatModel{
		wrapped: wrapped,
	}, nil
}

// RoundTrip implements http.RoundTripper. Requests other than chat
// completions pass through untouched.
func (c *CustomRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.Contains(req.URL.Path, "/chat/completions") {
		return c.wrapped.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if c.attribution.Referer != "" {
		req.Header.Set("HTTP-Referer", c.attribution.Referer)
	}
	if c.attribution.Title != "" {
		req.Header.Set("X-Title", c.attribution.Title)
	}

	return c.wrapped.RoundTrip(req)
}

// Generate implements model.BaseChatModel.
func (c *CustomChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return c.wrapped.Generate(ctx, in, opts...)
}

// GetType returns the type identifier for this model implementation.
func (c *CustomChatModel) GetType() string {
	return "CustomOpenAI"
}
