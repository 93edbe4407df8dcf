package sdk

import (
	"context"
	"fmt"

	"github.com/ramizpolic/islamicai/internal/chat"
	"github.com/ramizpolic/islamicai/internal/config"
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/hooks"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/spf13/viper"
)

// Assistant provides programmatic access to the assistant. It keeps one
// conversation and answers each question in the language it was asked in.
type Assistant struct {
	session     *chat.Session
	modelString string
}

// Options configures Assistant creation. All fields are optional and fall
// back to the same settings the CLI uses: ISLAMICAI_* environment variables,
// the config file and built-in defaults.
type Options struct {
	Model      string // Override model (e.g., "openrouter:google/gemini-2.5-flash")
	APIKey     string // Override the provider API key
	ConfigFile string // Override config file path
	Language   string // Welcome message language
	HooksFile  string // Run the hooks configured in this file
	// ChatModel, when set, answers questions instead of a configured provider
	ChatModel models.ChatModel
}

// New creates an Assistant using the same configuration as the CLI.
func New(ctx context.Context, opts *Options) (*Assistant, error) {
	if opts == nil {
		opts = &Options{}
	}

	v := viper.New()
	if _, err := config.Init(v, opts.ConfigFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Model != "" {
		v.Set("model", opts.Model)
	}
	if opts.APIKey != "" {
		v.Set("provider-api-key", opts.APIKey)
	}
	if opts.Language != "" {
		v.Set("language", opts.Language)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	var hookConfig *hooks.HookConfig
	if opts.HooksFile != "" {
		if hookConfig, err = hooks.LoadHooksConfig(opts.HooksFile); err != nil {
			return nil, err
		}
	}

	sess, err := chat.NewSession(ctx, &chat.Config{
		ModelConfig: cfg.ProviderConfig(),
		Model:       opts.ChatModel,
		Language:    cfg.LanguageTag(),
		Hooks:       hookConfig,
	})
	if err != nil {
		return nil, err
	}

	return &Assistant{
		session:     sess,
		modelString: cfg.Model,
	}, nil
}

// Ask sends a question and returns the reply. A provider failure is not
// an error: the reply is the apology message and Reply.Err holds the cause.
// Ask fails for blank questions and while another question is pending.
func (a *Assistant) Ask(ctx context.Context, question string) (*Reply, error) {
	result, err := a.session.Submit(ctx, question)
	if err != nil {
		return nil, err
	}
	return &Reply{
		Text:     result.Reply.Text,
		Language: result.Language,
		Segments: format.Format(result.Reply.Text, result.Language),
		Usage:    result.Usage,
		Err:      result.Err,
	}, nil
}

// Detect returns the language a question would be answered in.
func (a *Assistant) Detect(question string) language.Tag {
	return a.session.Detect(question)
}

// Messages returns the conversation so far, starting with the welcome
// message.
func (a *Assistant) Messages() []Message {
	return a.session.Messages()
}

// Reset starts a new conversation.
func (a *Assistant) Reset() {
	a.session.Reset()
}

// GetModelString returns the configured model, e.g. "openrouter:google/gemini-2.5-flash".
func (a *Assistant) GetModelString() string {
	return a.modelString
}
