package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds a hook that sets no timeout of its own.
const DefaultTimeout = 60 * time.Second

// blockExitCode makes a hook block the event, with stderr as the reason.
const blockExitCode = 2

// Executor runs the configured hooks of a session.
type Executor struct {
	config    *HookConfig
	sessionID string
	model     string
}

// NewExecutor creates an executor. sessionID and model are passed to every
// hook in its input.
func NewExecutor(config *HookConfig, sessionID, model string) *Executor {
	if config == nil {
		config = &HookConfig{}
	}
	return &Executor{config: config, sessionID: sessionID, model: model}
}

// Common fills the fields shared by every hook input.
func (e *Executor) Common(event HookEvent, lang string) CommonInput {
	cwd, _ := os.Getwd()
	return CommonInput{
		SessionID:     e.sessionID,
		CWD:           cwd,
		HookEventName: event,
		Timestamp:     time.Now().Unix(),
		Model:         e.model,
		Language:      lang,
	}
}

// ExecuteHooks runs every hook registered for event whose matcher matches
// lang, in configuration order, and merges their outputs. It returns nil
// when no hook ran. Execution stops at the first hook that blocks a
// blockable event. A failing hook is logged and skipped.
func (e *Executor) ExecuteHooks(ctx context.Context, event HookEvent, lang string, input any) (*HookOutput, error) {
	matchers := e.config.Hooks[event]
	if len(matchers) == 0 {
		return nil, nil
	}

	payload, err := sonic.ConfigStd.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal hook input: %w", err)
	}

	var merged *HookOutput
	for _, m := range matchers {
		if !matchesPattern(m.Matcher, lang) {
			continue
		}
		for _, h := range m.Hooks {
			out, err := e.run(ctx, h, payload)
			if err != nil {
				log.Warn("hook failed", "event", event, "command", h.Command, "err", err)
				continue
			}
			merged = mergeOutput(merged, out)
			if event.CanBlock() && merged.Blocked() {
				return merged, nil
			}
		}
	}
	return merged, nil
}

func (e *Executor) run(ctx context.Context, h HookEntry, payload []byte) (*HookOutput, error) {
	timeout := DefaultTimeout
	if h.Timeout > 0 {
		timeout = time.Duration(h.Timeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", h.Command)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of the shell may keep the pipes open after it is killed
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("timed out after %s", timeout)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && exitErr.ExitCode() == blockExitCode:
		stop := false
		return &HookOutput{
			Continue: &stop,
			Decision: "block",
			Reason:   strings.TrimSpace(stderr.String()),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	text := strings.TrimSpace(stdout.String())
	if !strings.HasPrefix(text, "{") {
		return &HookOutput{}, nil
	}
	var out HookOutput
	if err := sonic.ConfigStd.UnmarshalFromString(text, &out); err != nil {
		log.Debug("hook printed invalid JSON", "command", h.Command, "err", err)
		return &HookOutput{}, nil
	}
	return &out, nil
}

// mergeOutput combines hook outputs. A block from any hook wins.
func mergeOutput(into, out *HookOutput) *HookOutput {
	if into == nil {
		merged := *out
		return &merged
	}
	if out.Continue != nil && (into.Continue == nil || !*out.Continue) {
		into.Continue = out.Continue
	}
	if out.StopReason != "" {
		into.StopReason = out.StopReason
	}
	into.SuppressOutput = into.SuppressOutput || out.SuppressOutput
	if out.Decision != "" && into.Decision != "block" {
		into.Decision = out.Decision
		into.Reason = out.Reason
	} else if out.Reason != "" && into.Reason == "" {
		into.Reason = out.Reason
	}
	return into
}
