// Package google adapts the Gemini API to the eino chat model interface.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Config configures a ChatModel.
type Config struct {
	APIKey string
	Model  string

	Temperature      float32
	MaxTokens        int
	FrequencyPenalty float32
	PresencePenalty  float32

	HTTPClient *http.Client
}

// ChatModel generates replies with a Gemini model.
type ChatModel struct {
	client *genai.Client
	config Config
}

// NewChatModel creates a Gemini client for the Gemini API backend.
func NewChatModel(ctx context.Context, config *Config) (*ChatModel, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key required for Gemini model")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: config.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &ChatModel{client: client, config: *config}, nil
}

// Generate implements model.BaseChatModel. System messages become the
// request's system instruction.
func (g *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Temperature: &g.config.Temperature,
		MaxTokens:   &g.config.MaxTokens,
		Model:       &g.config.Model,
	}, opts...)

	system, contents := convertMessages(input)
	if len(contents) == 0 {
		return nil, errors.New("no user content to send")
	}

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr(*options.Temperature),
		MaxOutputTokens:   int32(*options.MaxTokens),
		FrequencyPenalty:  genai.Ptr(g.config.FrequencyPenalty),
		PresencePenalty:   genai.Ptr(g.config.PresencePenalty),
	}

	resp, err := g.client.Models.GenerateContent(ctx, *options.Model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return convertResponse(resp)
}

// convertMessages splits eino messages into a system instruction and the
// conversation contents.
func convertMessages(messages []*schema.Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	var contents []*genai.Content

	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.System:
			if system == nil {
				system = genai.NewContentFromText(msg.Content, genai.RoleUser)
			} else {
				system.Parts = append(system.Parts, genai.NewPartFromText(msg.Content))
			}
		case schema.Assistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return system, contents
}

func convertResponse(resp *genai.GenerateContentResponse) (*schema.Message, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates in response")
	}

	message := &schema.Message{
		Role:    schema.Assistant,
		Content: resp.Text(),
		ResponseMeta: &schema.ResponseMeta{
			FinishReason: string(resp.Candidates[0].FinishReason),
		},
	}
	if usage := resp.UsageMetadata; usage != nil {
		message.ResponseMeta.Usage = &schema.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return message, nil
}
