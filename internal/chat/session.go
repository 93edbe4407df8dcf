// Package chat drives a conversation: it detects the language of each
// question, asks the model with the matching system prompt and records both
// sides in the session log.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/ramizpolic/islamicai/internal/hooks"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/ramizpolic/islamicai/internal/session"
	"github.com/ramizpolic/islamicai/internal/tokens"
)

// ApologyMessage replaces the reply whenever the model call fails.
const ApologyMessage = "I apologize, but I encountered an error. Please check your API key configuration or try again later."

var (
	// ErrEmptyInput is returned for blank input. Nothing is recorded.
	ErrEmptyInput = errors.New("input is empty")
	// ErrBusy is returned while a previous request is still in flight.
	ErrBusy = errors.New("a request is already in progress")
)

// BlockedError is returned when a UserPromptSubmit hook blocks a question.
// The question is not recorded.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return "question blocked by hook"
	}
	return "question blocked by hook: " + e.Reason
}

// Config holds the options for creating a Session.
type Config struct {
	// ModelConfig selects and configures the provider. Ignored when Model is set.
	ModelConfig *models.ProviderConfig
	// Model, when set, is used directly instead of creating a provider
	Model models.ChatModel
	// Language is the language of the welcome message, english when empty
	Language language.Tag
	// Selector overrides the language detector
	Selector *language.Selector
	// Hooks are run around each question, none when nil
	Hooks *hooks.HookConfig
}

// Result describes the outcome of one submitted question.
type Result struct {
	// Question is the recorded user message
	Question session.Message
	// Reply is the recorded assistant message, the apology on failure
	Reply session.Message
	// Language is the language detected for the question
	Language language.Tag
	// Usage is the token usage of the request
	Usage tokens.Usage
	// Err is the provider error that caused the apology, nil on success
	Err error
}

// Session is a single conversation. It allows at most one outstanding
// model request; a second Submit while one is pending fails with ErrBusy.
type Session struct {
	id       string
	model    models.ChatModel
	selector *language.Selector
	language language.Tag
	log      *session.Log
	loading  atomic.Bool
	hooks    *hooks.Executor

	provider string
	modelID  string
	info     *models.ModelInfo
}

// NewSession creates a session seeded with the welcome message.
func NewSession(ctx context.Context, config *Config) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		model:    config.Model,
		selector: config.Selector,
		language: language.Parse(string(config.Language)),
	}
	if s.selector == nil {
		s.selector = language.NewSelector(nil)
	}

	if s.model == nil {
		modelConfig := config.ModelConfig
		if modelConfig == nil {
			modelConfig = &models.ProviderConfig{}
		}
		result, err := models.CreateProvider(ctx, modelConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create model provider: %w", err)
		}
		s.model = result.Model
		s.provider = result.Provider
		s.modelID = result.ModelID
		s.info = result.Info
	}

	if !config.Hooks.Empty() {
		s.hooks = hooks.NewExecutor(config.Hooks, s.id, s.modelID)
	}

	s.log = session.NewLog(s.language)
	return s, nil
}

// Submit records input as a user message, asks the model and records the
// reply. Provider failures do not fail Submit: they are logged and recorded
// as ApologyMessage, with the cause in Result.Err. A question blocked by a
// hook fails with *BlockedError.
func (s *Session) Submit(ctx context.Context, input string) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if !s.loading.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.loading.Store(false)

	tag := s.selector.Detect(input)
	if err := s.beforeSubmit(ctx, input, tag); err != nil {
		return nil, err
	}

	result := &Result{
		Question: s.log.Append(session.UserMessage(input, tag)),
		Language: tag,
	}

	request := []*schema.Message{
		schema.SystemMessage(language.SystemPrompt(tag)),
		schema.UserMessage(input),
	}

	log.Debug("sending request", "language", tag, "model", s.modelID)
	reply, err := s.model.Generate(ctx, request)
	if err == nil && reply == nil {
		err = errors.New("model returned no reply")
	}
	if err != nil {
		log.Error("failed to get response", "language", tag, "err", err)
		result.Err = err
		result.Reply = s.log.Append(session.AssistantMessage(ApologyMessage, tag))
		result.Usage = tokens.CountUsage(request, nil)
		s.afterReply(ctx, result)
		return result, nil
	}

	result.Reply = s.log.Append(session.FromSchemaMessage(reply, tag))
	result.Usage = tokens.CountUsage(request, reply)
	s.afterReply(ctx, result)
	return result, nil
}

func (s *Session) beforeSubmit(ctx context.Context, input string, tag language.Tag) error {
	if s.hooks == nil {
		return nil
	}
	out, err := s.hooks.ExecuteHooks(ctx, hooks.UserPromptSubmit, string(tag), hooks.UserPromptSubmitInput{
		CommonInput: s.hooks.Common(hooks.UserPromptSubmit, string(tag)),
		Prompt:      input,
	})
	if err != nil {
		return err
	}
	if out.Blocked() {
		log.Info("question blocked by hook", "reason", out.BlockReason())
		return &BlockedError{Reason: out.BlockReason()}
	}
	return nil
}

func (s *Session) afterReply(ctx context.Context, result *Result) {
	if s.hooks == nil {
		return
	}
	tag := string(result.Language)
	input := hooks.StopInput{
		CommonInput: s.hooks.Common(hooks.Stop, tag),
		Prompt:      result.Question.Text,
		Response:    result.Reply.Text,
		StopReason:  "completed",
		Usage: map[string]int{
			"input_tokens":  result.Usage.InputTokens,
			"output_tokens": result.Usage.OutputTokens,
		},
	}
	if result.Err != nil {
		input.StopReason = "error"
		input.Error = result.Err.Error()
	}
	if _, err := s.hooks.ExecuteHooks(ctx, hooks.Stop, tag, input); err != nil {
		log.Warn("stop hooks failed", "err", err)
	}
}

// Loading reports whether a request is in flight.
func (s *Session) Loading() bool {
	return s.loading.Load()
}

// Messages returns the conversation in display order.
func (s *Session) Messages() []session.Message {
	return s.log.Messages()
}

// Reset ends the conversation and starts a new one seeded with the welcome
// message.
func (s *Session) Reset() {
	count := s.log.Len()
	s.log.Reset(session.WelcomeMessage(s.language))

	if s.hooks == nil {
		return
	}
	tag := string(s.language)
	_, err := s.hooks.ExecuteHooks(context.Background(), hooks.SessionClear, tag, hooks.SessionClearInput{
		CommonInput:  s.hooks.Common(hooks.SessionClear, tag),
		MessageCount: count,
	})
	if err != nil {
		log.Warn("clear hooks failed", "err", err)
	}
}

// ID identifies the session in hook input.
func (s *Session) ID() string {
	return s.id
}

// Detect returns the language the session would answer input in.
func (s *Session) Detect(input string) language.Tag {
	return s.selector.Detect(input)
}

// Placeholder returns the input placeholder for text being typed, in the
// language detected from that text.
func (s *Session) Placeholder(input string) string {
	return language.ConfigFor(s.selector.Detect(input)).Placeholder
}

// Thinking returns the pending-reply label for the language of input.
func (s *Session) Thinking(input string) string {
	return language.ConfigFor(s.selector.Detect(input)).Thinking
}

// Language is the session's welcome language.
func (s *Session) Language() language.Tag {
	return s.language
}

// Provider returns the provider name, empty for an injected model.
func (s *Session) Provider() string {
	return s.provider
}

// ModelID returns the provider's model identifier, empty for an injected model.
func (s *Session) ModelID() string {
	return s.modelID
}

// ModelInfo returns pricing for the model when it is known.
func (s *Session) ModelInfo() *models.ModelInfo {
	return s.info
}
