package sdk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ramizpolic/islamicai/internal/chat"
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models/mock"
)

func newTestAssistant(t *testing.T, opts *Options) *Assistant {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	a, err := New(context.Background(), opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a
}

func TestAskWithMockProvider(t *testing.T) {
	a := newTestAssistant(t, &Options{Model: "mock:islamicai"})
	if a.GetModelString() != "mock:islamicai" {
		t.Errorf("model = %q", a.GetModelString())
	}

	reply, err := a.Ask(context.Background(), "What does Islam teach about patience during hardship and difficult times?")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if reply.Err != nil {
		t.Fatalf("unexpected provider error: %v", reply.Err)
	}
	if reply.Language != language.English {
		t.Errorf("language = %s, want english", reply.Language)
	}

	kinds := make(map[format.Kind]bool)
	for _, s := range reply.Segments {
		kinds[s.Kind] = true
	}
	for _, want := range []format.Kind{format.ArabicText, format.Verse, format.Hadith, format.BulletList} {
		if !kinds[want] {
			t.Errorf("reply has no %s segment", want)
		}
	}
	if strings.Contains(reply.Plain(), "[verse-section]") {
		t.Error("plain reply still contains markers")
	}

	if got := len(a.Messages()); got != 3 {
		t.Errorf("messages = %d, want welcome, question and reply", got)
	}
	a.Reset()
	if got := len(a.Messages()); got != 1 {
		t.Errorf("messages after reset = %d, want 1", got)
	}
}

func TestAskProviderFailure(t *testing.T) {
	model := mock.New()
	model.Err = errors.New("upstream down")
	a := newTestAssistant(t, &Options{ChatModel: model, Language: "urdu"})

	if msgs := a.Messages(); msgs[0].Language != language.Urdu {
		t.Errorf("welcome language = %s, want urdu", msgs[0].Language)
	}

	reply, err := a.Ask(context.Background(), "السلام علیکم، نماز کے فرائض کیا ہیں؟")
	if err != nil {
		t.Fatalf("Ask() error: %v", err)
	}
	if reply.Text != chat.ApologyMessage {
		t.Errorf("reply = %q, want the apology", reply.Text)
	}
	if reply.Err == nil {
		t.Error("expected the provider error on the reply")
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	a := newTestAssistant(t, &Options{ChatModel: mock.New()})
	if _, err := a.Ask(context.Background(), "   "); !errors.Is(err, chat.ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestNewMissingKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("ISLAMICAI_PROVIDER_API_KEY", "")

	_, err := New(context.Background(), &Options{Model: "openrouter:google/gemini-2.5-flash"})
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected API key error, got %v", err)
	}
}

func TestAskBlockedByHook(t *testing.T) {
	dir := t.TempDir()
	hooksFile := filepath.Join(dir, "hooks.yml")
	if err := os.WriteFile(hooksFile, []byte(`
hooks:
  UserPromptSubmit:
    - hooks:
        - type: command
          command: "echo 'outside office hours' >&2; exit 2"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestAssistant(t, &Options{ChatModel: &mock.ChatModel{}, HooksFile: hooksFile})
	_, err := a.Ask(context.Background(), "What is zakat?")

	var blocked *chat.BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected a blocked question, got %v", err)
	}
	if blocked.Reason != "outside office hours" {
		t.Errorf("Reason = %q", blocked.Reason)
	}
	if got := len(a.Messages()); got != 1 {
		t.Errorf("messages = %d, want only the welcome", got)
	}
}
