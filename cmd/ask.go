package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ramizpolic/islamicai/internal/config"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var askCmd = &cobra.Command{
	Use:   "ask <question-file>",
	Short: "Answer a question read from a file",
	Long: `Answer the question in a file. The file may start with YAML frontmatter
that selects the model and the reply language.

Example question file:
---
model: "openrouter:google/gemini-2.5-flash"
language: urdu
temperature: 0.2
---
What does the Quran say about ${topic:-patience}?

Lines starting with # are comments. A comment of the form "# key: value"
sets model, language, temperature or max-tokens when the frontmatter does
not.

Variables use ${name} or ${name:-default} and are passed as --args:name value:

  islamicai ask question.md --args:topic gratitude

Flags given on the command line override the file.`,
	Args: cobra.ExactArgs(1),
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd, args[0], parseArgsVariables(os.Args[1:]))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

// questionFile is a parsed question file.
type questionFile struct {
	Model       string   `yaml:"model"`
	Language    string   `yaml:"language"`
	Temperature *float32 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max-tokens"`

	Question string `yaml:"-"`
}

// parseArgsVariables collects --args:name value pairs. A name followed by
// another flag, or by nothing, gets an empty value.
func parseArgsVariables(args []string) map[string]string {
	variables := make(map[string]string)
	for i := 0; i < len(args); i++ {
		name, ok := strings.CutPrefix(args[i], "--args:")
		if !ok || name == "" {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			variables[name] = args[i+1]
			i++
			continue
		}
		variables[name] = ""
	}
	return variables
}

func runAsk(cmd *cobra.Command, path string, variables map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read question file: %w", err)
	}
	qf, err := parseQuestionFile(string(data), variables)
	if err != nil {
		return fmt.Errorf("failed to parse question file %s: %w", path, err)
	}
	if qf.Question == "" {
		return fmt.Errorf("question file %s has no question", path)
	}

	flags := cmd.Flags()
	if qf.Model != "" && !flags.Changed("model") {
		v.Set("model", qf.Model)
	}
	if qf.Temperature != nil && !flags.Changed("temperature") {
		v.Set("temperature", *qf.Temperature)
	}
	if qf.MaxTokens != 0 && !flags.Changed("max-tokens") {
		v.Set("max-tokens", qf.MaxTokens)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var selector *language.Selector
	if qf.Language != "" {
		tag := language.Parse(qf.Language)
		log.Debug("reply language fixed by question file", "language", tag)
		selector = language.NewSelector(language.DetectorFunc(func(string) string {
			return string(tag)
		}))
	}

	sess, err := newSession(cmd.Context(), cfg, selector)
	if err != nil {
		return err
	}
	return askOnce(cmd.Context(), cmd.OutOrStdout(), cfg, sess, qf.Question)
}

// parseQuestionFile substitutes variables, then splits content into
// frontmatter and question. A leading shebang line is ignored.
func parseQuestionFile(content string, variables map[string]string) (*questionFile, error) {
	if strings.HasPrefix(content, "#!") {
		if _, rest, ok := strings.Cut(content, "\n"); ok {
			content = rest
		} else {
			content = ""
		}
	}

	if config.HasScriptArgs(content) {
		var err error
		content, err = config.NewArgsSubstituter(variables).SubstituteArgs(content)
		if err != nil {
			return nil, err
		}
	}

	var (
		yamlLines     []string
		questionLines []string
		comments      []string
		inFrontmatter bool
		seenBody      bool
	)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "#"):
			comments = append(comments, strings.TrimSpace(trimmed[1:]))
		case trimmed == "---" && !seenBody && !inFrontmatter && len(yamlLines) == 0:
			inFrontmatter = true
		case trimmed == "---" && inFrontmatter:
			inFrontmatter = false
			seenBody = true
		case inFrontmatter:
			yamlLines = append(yamlLines, line)
		default:
			if trimmed != "" {
				seenBody = true
			}
			questionLines = append(questionLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if inFrontmatter {
		return nil, fmt.Errorf("frontmatter is not closed with ---")
	}

	var qf questionFile
	if len(yamlLines) > 0 {
		if err := yaml.Unmarshal([]byte(strings.Join(yamlLines, "\n")), &qf); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	for _, comment := range comments {
		key, value, ok := strings.Cut(comment, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "model":
			if qf.Model == "" {
				qf.Model = value
			}
		case "language":
			if qf.Language == "" {
				qf.Language = value
			}
		case "temperature":
			if qf.Temperature == nil {
				if t, err := strconv.ParseFloat(value, 32); err == nil {
					temperature := float32(t)
					qf.Temperature = &temperature
				}
			}
		case "max-tokens":
			if qf.MaxTokens == 0 {
				if n, err := strconv.Atoi(value); err == nil {
					qf.MaxTokens = n
				}
			}
		}
	}

	qf.Question = strings.TrimSpace(strings.Join(questionLines, "\n"))
	return &qf, nil
}
