package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadInput(t *testing.T) {
	got, err := readInput(strings.NewReader("ignored"), []string{"what", "is", "salah"})
	if err != nil || got != "what is salah" {
		t.Errorf("readInput(args) = %q, %v", got, err)
	}

	got, err = readInput(strings.NewReader("from stdin"), nil)
	if err != nil || got != "from stdin" {
		t.Errorf("readInput(stdin) = %q, %v", got, err)
	}
}

func TestPromptCommand(t *testing.T) {
	var out bytes.Buffer
	promptCmd.SetOut(&out)
	promptWelcome = true
	t.Cleanup(func() { promptWelcome = false })

	if err := promptCmd.RunE(promptCmd, []string{"klingon"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Error("expected the english welcome message")
	}
}

func TestRenderPlainReply(t *testing.T) {
	var out bytes.Buffer
	renderCmd.SetOut(&out)
	renderCmd.SetIn(strings.NewReader("Intro\n\n- one\n- two"))
	renderPlain, renderLanguage = true, "english"
	t.Cleanup(func() { renderPlain, renderLanguage = false, "" })

	if err := renderCmd.RunE(renderCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "• one\n• two") {
		t.Errorf("output = %q", out.String())
	}
}
