// Package huggingface talks to Hugging Face Inference Providers through
// their OpenAI-compatible router.
package huggingface

import (
	"context"
	"errors"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// DefaultBaseURL is the Inference Providers router.
const DefaultBaseURL = "https://router.huggingface.co/v1"

// ChatModel generates replies with a model hosted on Hugging Face, e.g.
// "meta-llama/Llama-3.1-8B-Instruct".
type ChatModel struct {
	wrapped *einoopenai.ChatModel
}

// NewChatModel creates a chat model. The base URL defaults to
// DefaultBaseURL.
func NewChatModel(ctx context.Context, config *einoopenai.ChatModelConfig) (*ChatModel, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key required for Hugging Face model")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	wrapped, err := einoopenai.NewChatModel(ctx, config)
	if err != nil {
		return nil, err
	}
	return &ChatModel{wrapped: wrapped}, nil
}

// Generate implements models.ChatModel.
func (c *ChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return c.wrapped.Generate(ctx, in, opts...)
}
