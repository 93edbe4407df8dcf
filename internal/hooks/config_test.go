package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHooksConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOOK_LOG", "/tmp/islamicai-hooks.log")

	global := writeFile(t, filepath.Join(dir, "global.yml"), `
hooks:
  UserPromptSubmit:
    - matcher: "arabic|urdu"
      hooks:
        - type: command
          command: "tee -a ${env://HOOK_LOG}"
          timeout: 5
`)
	project := writeFile(t, filepath.Join(dir, "project.yml"), `
hooks:
  UserPromptSubmit:
    - hooks:
        - type: command
          command: "./check.sh"
  Stop:
    - hooks:
        - type: command
          command: "notify-send done"
`)

	cfg, err := LoadHooksConfig(global, filepath.Join(dir, "missing.yml"), project)
	if err != nil {
		t.Fatalf("LoadHooksConfig: %v", err)
	}

	submit := cfg.Hooks[UserPromptSubmit]
	if len(submit) != 2 {
		t.Fatalf("got %d UserPromptSubmit matchers, want 2", len(submit))
	}
	if submit[0].Matcher != "arabic|urdu" {
		t.Errorf("matcher = %q", submit[0].Matcher)
	}
	if got := submit[0].Hooks[0].Command; got != "tee -a /tmp/islamicai-hooks.log" {
		t.Errorf("command = %q, want env substituted", got)
	}
	if submit[0].Hooks[0].Timeout != 5 {
		t.Errorf("timeout = %d, want 5", submit[0].Hooks[0].Timeout)
	}
	if len(cfg.Hooks[Stop]) != 1 {
		t.Errorf("got %d Stop matchers, want 1", len(cfg.Hooks[Stop]))
	}
	if cfg.Empty() {
		t.Error("Empty() = true for a loaded config")
	}
}

func TestLoadHooksConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown event",
			content: `
hooks:
  PreToolUse:
    - hooks:
        - type: command
          command: "true"
`,
			wantErr: "unknown hook event",
		},
		{
			name: "unsupported type",
			content: `
hooks:
  Stop:
    - hooks:
        - type: webhook
          command: "true"
`,
			wantErr: "unsupported hook type",
		},
		{
			name: "empty command",
			content: `
hooks:
  Stop:
    - hooks:
        - type: command
`,
			wantErr: "empty command",
		},
		{
			name: "invalid matcher",
			content: `
hooks:
  Stop:
    - matcher: "[urdu"
      hooks:
        - type: command
          command: "true"
`,
			wantErr: "invalid matcher",
		},
		{
			name: "missing variable",
			content: `
hooks:
  Stop:
    - hooks:
        - type: command
          command: "${env://ISLAMICAI_TEST_UNSET_HOOK_VAR}"
`,
			wantErr: "ISLAMICAI_TEST_UNSET_HOOK_VAR",
		},
		{
			name:    "invalid yaml",
			content: "hooks: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, filepath.Join(t.TempDir(), "hooks.yml"), tt.content)
			_, err := LoadHooksConfig(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultHookPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg-test")
	paths := DefaultHookPaths()
	want := []string{
		filepath.Join("/etc/xdg-test", "islamicai", "hooks.yml"),
		filepath.Join(".islamicai", "hooks.yml"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"", "english", true},
		{"english", "english", true},
		{"^(arabic|urdu)$", "urdu", true},
		{"^(arabic|urdu)$", "bengali", false},
		{"arab", "arabic", true},
		{"[urdu", "[urdu", true},
		{"[urdu", "urdu", false},
	}
	for _, tt := range tests {
		if got := matchesPattern(tt.pattern, tt.value); got != tt.want {
			t.Errorf("matchesPattern(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
		}
	}
}

func TestHookEvent(t *testing.T) {
	for _, e := range []HookEvent{UserPromptSubmit, Stop, SessionClear} {
		if !e.IsValid() {
			t.Errorf("%s should be valid", e)
		}
	}
	if HookEvent("PreToolUse").IsValid() {
		t.Error("PreToolUse should not be valid")
	}
	if !UserPromptSubmit.CanBlock() || Stop.CanBlock() {
		t.Error("only UserPromptSubmit can block")
	}
}
