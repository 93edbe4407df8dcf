// Package hooks runs user commands at points of a conversation. Hooks are
// configured in YAML, receive a JSON description of the event on stdin and
// may answer with JSON on stdout.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ramizpolic/islamicai/internal/config"
	"gopkg.in/yaml.v3"
)

// HookConfig maps events to the hooks that run for them.
type HookConfig struct {
	Hooks map[HookEvent][]HookMatcher `yaml:"hooks"`
}

// HookMatcher runs its hooks when Matcher, a regular expression, matches
// the detected language. An empty matcher matches every language.
type HookMatcher struct {
	Matcher string      `yaml:"matcher,omitempty"`
	Hooks   []HookEntry `yaml:"hooks"`
}

// HookEntry is a single command. Timeout is in seconds.
type HookEntry struct {
	Type    string `yaml:"type"`
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"`
}

// DefaultHookPaths returns the hook files looked up when none are given:
// the user's config directory, then the working directory. Later files add
// to earlier ones.
func DefaultHookPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "islamicai", "hooks.yml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "islamicai", "hooks.yml"))
	}
	return append(paths, filepath.Join(".islamicai", "hooks.yml"))
}

// LoadHooksConfig reads and merges hook files in order, expanding
// ${env://VAR} references. Missing files are skipped.
func LoadHooksConfig(paths ...string) (*HookConfig, error) {
	merged := &HookConfig{Hooks: map[HookEvent][]HookMatcher{}}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read hooks file %s: %w", path, err)
		}

		content := string(data)
		if config.HasEnvVars(content) {
			substituter := &config.EnvSubstituter{}
			if content, err = substituter.SubstituteEnvVars(content); err != nil {
				return nil, fmt.Errorf("hooks file %s: %w", path, err)
			}
		}

		var cfg HookConfig
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse hooks file %s: %w", path, err)
		}
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("hooks file %s: %w", path, err)
		}

		for event, matchers := range cfg.Hooks {
			merged.Hooks[event] = append(merged.Hooks[event], matchers...)
		}
	}
	return merged, nil
}

func (c *HookConfig) validate() error {
	for event, matchers := range c.Hooks {
		if !event.IsValid() {
			return fmt.Errorf("unknown hook event %q", event)
		}
		for _, m := range matchers {
			if m.Matcher != "" {
				if _, err := regexp.Compile(m.Matcher); err != nil {
					return fmt.Errorf("invalid matcher %q for %s: %w", m.Matcher, event, err)
				}
			}
			for _, h := range m.Hooks {
				if h.Type != "command" {
					return fmt.Errorf("unsupported hook type %q for %s", h.Type, event)
				}
				if h.Command == "" {
					return fmt.Errorf("empty command for %s", event)
				}
			}
		}
	}
	return nil
}

// Empty reports whether no hooks are configured.
func (c *HookConfig) Empty() bool {
	if c == nil {
		return true
	}
	for _, matchers := range c.Hooks {
		if len(matchers) > 0 {
			return false
		}
	}
	return true
}

// matchesPattern reports whether pattern matches value. Patterns that are
// not valid regular expressions must match exactly.
func matchesPattern(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return pattern == value
	}
	return re.MatchString(value)
}
