package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ramizpolic/islamicai/internal/hooks"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/ramizpolic/islamicai/internal/models/mock"
)

func newSession(t *testing.T, m models.ChatModel) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), &Config{
		Model: m,
		Selector: language.NewSelector(language.DetectorFunc(func(text string) string {
			if text == "سلام" {
				return "urdu"
			}
			return "english"
		})),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSubmitSuccess(t *testing.T) {
	m := &mock.ChatModel{Reply: "Wa alaikum as-salaam"}
	s := newSession(t, m)

	result, err := s.Submit(context.Background(), "سلام")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("unexpected provider error: %v", result.Err)
	}
	if result.Language != language.Urdu {
		t.Errorf("Language = %q, want urdu", result.Language)
	}

	messages := s.Messages()
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want welcome, question and reply", len(messages))
	}
	if !messages[1].IsUser || messages[1].Text != "سلام" {
		t.Errorf("unexpected question: %+v", messages[1])
	}
	if messages[2].IsUser || messages[2].Text != "Wa alaikum as-salaam" || messages[2].Language != language.Urdu {
		t.Errorf("unexpected reply: %+v", messages[2])
	}

	requests := m.Requests()
	if len(requests) != 1 || len(requests[0]) != 2 {
		t.Fatalf("expected one two-message request, got %v", requests)
	}
	if requests[0][0].Role != schema.System || requests[0][0].Content != language.SystemPrompt(language.Urdu) {
		t.Error("first message should be the urdu system prompt")
	}
	if requests[0][1].Role != schema.User || requests[0][1].Content != "سلام" {
		t.Errorf("unexpected user message: %+v", requests[0][1])
	}
	if s.Loading() {
		t.Error("loading should be reset after a reply")
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	m := mock.New()
	s := newSession(t, m)

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := s.Submit(context.Background(), input); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Submit(%q) err = %v, want ErrEmptyInput", input, err)
		}
	}
	if len(s.Messages()) != 1 {
		t.Error("blank input should not be recorded")
	}
	if len(m.Requests()) != 0 {
		t.Error("blank input should not reach the model")
	}
}

func TestSubmitProviderErrorRecordsApology(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"No auth credentials found"}}`))
	}))
	defer server.Close()

	s, err := NewSession(context.Background(), &Config{
		ModelConfig: &models.ProviderConfig{
			ModelString:    "openrouter:google/gemini-2.5-flash-preview-05-20",
			ProviderAPIKey: "bad-key",
			ProviderURL:    server.URL,
		},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	result, err := s.Submit(context.Background(), "What is zakat?")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Err == nil || result.Err.Error() != "No auth credentials found" {
		t.Errorf("Err = %v", result.Err)
	}

	messages := s.Messages()
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[2].Text != ApologyMessage || messages[2].IsUser {
		t.Errorf("expected apology, got %+v", messages[2])
	}
	if s.Loading() {
		t.Error("loading should be reset after a failure")
	}

	// The session stays usable after a failure.
	if _, err := s.Submit(context.Background(), "again"); err != nil {
		t.Errorf("second Submit: %v", err)
	}
}

type blockingModel struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingModel) Generate(ctx context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	close(b.started)
	<-b.release
	return schema.AssistantMessage("done", nil), nil
}

func TestSubmitWhileLoading(t *testing.T) {
	m := &blockingModel{started: make(chan struct{}), release: make(chan struct{})}
	s := newSession(t, m)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), "first")
		done <- err
	}()

	<-m.started
	if !s.Loading() {
		t.Error("Loading() should be true while a request is pending")
	}
	if _, err := s.Submit(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}

	close(m.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// welcome, first question, first reply; the rejected question is not recorded
	if got := len(s.Messages()); got != 3 {
		t.Errorf("got %d messages, want 3", got)
	}
}

func TestResetAndPlaceholder(t *testing.T) {
	s := newSession(t, mock.New())
	if _, err := s.Submit(context.Background(), "hello"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s.Reset()
	messages := s.Messages()
	if len(messages) != 1 || messages[0].Text != language.WelcomeMessage(language.English) {
		t.Errorf("unexpected log after reset: %+v", messages)
	}

	if got := s.Placeholder("سلام"); got != language.ConfigFor(language.Urdu).Placeholder {
		t.Errorf("Placeholder = %q", got)
	}
	if got := s.Placeholder(""); got != language.ConfigFor(language.English).Placeholder {
		t.Errorf("Placeholder for empty input = %q", got)
	}
}

func TestSubmitHooks(t *testing.T) {
	dir := t.TempDir()
	stopLog := filepath.Join(dir, "stop.json")

	cfg := &hooks.HookConfig{Hooks: map[hooks.HookEvent][]hooks.HookMatcher{
		hooks.UserPromptSubmit: {{
			Matcher: "^urdu$",
			Hooks:   []hooks.HookEntry{{Type: "command", Command: "echo 'urdu questions are paused' >&2; exit 2"}},
		}},
		hooks.Stop: {{
			Hooks: []hooks.HookEntry{{Type: "command", Command: "cat > " + stopLog}},
		}},
	}}

	m := &mock.ChatModel{Reply: "There are five pillars."}
	s, err := NewSession(context.Background(), &Config{
		Model: m,
		Hooks: cfg,
		Selector: language.NewSelector(language.DetectorFunc(func(text string) string {
			if text == "سلام" {
				return "urdu"
			}
			return "english"
		})),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	t.Run("blocked question is not recorded", func(t *testing.T) {
		_, err := s.Submit(context.Background(), "سلام")
		var blocked *BlockedError
		if !errors.As(err, &blocked) {
			t.Fatalf("expected BlockedError, got %v", err)
		}
		if blocked.Reason != "urdu questions are paused" {
			t.Errorf("Reason = %q", blocked.Reason)
		}
		if len(s.Messages()) != 1 {
			t.Errorf("got %d messages, want only the welcome", len(s.Messages()))
		}
		if len(m.Requests()) != 0 {
			t.Error("blocked question reached the model")
		}
	})

	t.Run("stop hook receives the reply", func(t *testing.T) {
		if _, err := s.Submit(context.Background(), "What are the pillars?"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		data, err := os.ReadFile(stopLog)
		if err != nil {
			t.Fatalf("stop hook did not run: %v", err)
		}
		for _, want := range []string{`"hook_event_name":"Stop"`, `"response":"There are five pillars."`, `"stop_reason":"completed"`, `"language":"english"`, `"session_id":"` + s.ID() + `"`} {
			if !strings.Contains(string(data), want) {
				t.Errorf("stop input %s missing %s", data, want)
			}
		}
	})
}
