package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/session"
	"github.com/ramizpolic/islamicai/internal/tokens"
	"golang.org/x/term"
)

// CLI prints the conversation to the terminal. Messages are printed as they
// arrive, either as bordered blocks or, in compact mode, one line each.
type CLI struct {
	out             io.Writer
	messageRenderer *MessageRenderer
	compactRenderer *CompactRenderer
	usageTracker    *UsageTracker
	width           int
	compactMode     bool
	modelName       string
	detect          func(string) language.Tag
}

// NewCLI creates a CLI writing to stdout.
func NewCLI(compact, plain bool) *CLI {
	return NewCLIWithWriter(os.Stdout, TerminalWidth(), compact, plain)
}

// NewCLIWithWriter creates a CLI writing to out with a fixed width.
func NewCLIWithWriter(out io.Writer, width int, compact, plain bool) *CLI {
	return &CLI{
		out:             out,
		width:           width,
		compactMode:     compact,
		messageRenderer: NewMessageRenderer(width, plain),
		compactRenderer: NewCompactRenderer(width),
	}
}

// SetUsageTracker attaches a usage tracker.
func (c *CLI) SetUsageTracker(tracker *UsageTracker) {
	c.usageTracker = tracker
	if tracker != nil {
		tracker.SetWidth(c.width)
	}
}

// SetModelName sets the name shown on replies.
func (c *CLI) SetModelName(modelName string) {
	c.modelName = modelName
}

// SetDetector sets the detector the input uses to localize its
// placeholder.
func (c *CLI) SetDetector(detect func(string) language.Tag) {
	c.detect = detect
}

// GetPrompt shows the input and waits for a question. io.EOF means the user
// left.
func (c *CLI) GetPrompt() (string, error) {
	input := NewSlashCommandInput(c.width, "Ask a question (/help for commands, Ctrl+C to quit)", c.detect)

	finalModel, err := tea.NewProgram(input).Run()
	if err != nil {
		return "", err
	}

	finalInput, ok := finalModel.(*SlashCommandInput)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	// erase the input so only the conversation remains
	for i := 0; i < finalInput.RenderedLines()-1; i++ {
		fmt.Fprint(c.out, "\033[1A\033[2K")
	}

	if finalInput.Cancelled() {
		return "", io.EOF
	}
	return strings.TrimSpace(finalInput.Value()), nil
}

// ShowSpinner runs action while a spinner shows message.
func (c *CLI) ShowSpinner(message string, action func() error) error {
	spinner := NewSpinner(message)
	spinner.Start()
	err := action()
	spinner.Stop()
	return err
}

func (c *CLI) print(msg UIMessage) {
	paddingLeft := 2
	if !c.compactMode && msg.Type == UserMessage {
		paddingLeft = 0
	}
	fmt.Fprintln(c.out, lipgloss.NewStyle().PaddingLeft(paddingLeft).Render(msg.Content))
}

// DisplayMessage prints a conversation message.
func (c *CLI) DisplayMessage(msg session.Message) {
	if msg.IsUser {
		c.DisplayUserMessage(msg)
		return
	}
	c.DisplayAssistantMessage(msg)
}

// DisplayUserMessage prints a question.
func (c *CLI) DisplayUserMessage(msg session.Message) {
	if c.compactMode {
		c.print(c.compactRenderer.RenderUserMessage(msg))
		return
	}
	c.print(c.messageRenderer.RenderUserMessage(msg))
}

// DisplayAssistantMessage prints a reply formatted for its language.
func (c *CLI) DisplayAssistantMessage(msg session.Message) {
	if c.compactMode {
		c.print(c.compactRenderer.RenderAssistantMessage(msg, c.modelName))
		return
	}
	c.print(c.messageRenderer.RenderAssistantMessage(msg, c.modelName))
}

// DisplayError prints an error.
func (c *CLI) DisplayError(err error) {
	if c.compactMode {
		c.print(c.compactRenderer.RenderErrorMessage(err.Error(), time.Now()))
		return
	}
	c.print(c.messageRenderer.RenderErrorMessage(err.Error(), time.Now()))
}

// DisplayInfo prints a system message. Content is markdown.
func (c *CLI) DisplayInfo(message string) {
	if c.compactMode {
		c.print(c.compactRenderer.RenderSystemMessage(message, time.Now()))
		return
	}
	c.print(c.messageRenderer.RenderSystemMessage(message, time.Now()))
}

// DisplayHelp prints the available commands.
func (c *CLI) DisplayHelp() {
	var help strings.Builder
	help.WriteString("## Available Commands\n")
	for _, category := range []string{"Info", "System"} {
		fmt.Fprintf(&help, "\n**%s**\n\n", category)
		for _, cmd := range CommandsInCategory(category) {
			fmt.Fprintf(&help, "- `%s`: %s", cmd.Name, cmd.Description)
			if len(cmd.Aliases) > 0 {
				fmt.Fprintf(&help, " (%s)", strings.Join(cmd.Aliases, ", "))
			}
			help.WriteString("\n")
		}
	}
	help.WriteString("- `Ctrl+C`: Exit at any time\n\n")
	help.WriteString("Ask a question in any supported language and the answer comes back in the same language.")
	c.DisplayInfo(help.String())
}

const aboutText = `## About

An AI assistant for Islamic knowledge. Answers are grounded in the Quran and authentic Hadith collections, with references.

**Sources**

- The Holy Quran
- Sahih al-Bukhari
- Sahih Muslim
- Sunan Abu Dawood
- Jami at-Tirmidhi

**Guidelines**

- Ask in your own language; the reply uses the same language.
- Answers cite verses and hadith with references.
- For personal rulings consult a qualified scholar.`

// DisplayAbout prints an overview with sources and guidelines.
func (c *CLI) DisplayAbout() {
	c.DisplayInfo(aboutText)
}

// DisplayLanguages prints the supported languages.
func (c *CLI) DisplayLanguages() {
	var content strings.Builder
	content.WriteString("## Supported Languages\n\n")
	for _, tag := range language.All() {
		cfg := language.ConfigFor(tag)
		fmt.Fprintf(&content, "- **%s** (`%s`, %s): %s\n", cfg.Name, tag, cfg.Direction, cfg.Honorifics.Prophet)
	}
	c.DisplayInfo(content.String())
}

// DisplayUsageStats prints last request and session token usage.
func (c *CLI) DisplayUsageStats() {
	if c.usageTracker == nil {
		c.DisplayInfo("Usage tracking is not available for this model.")
		return
	}

	sessionStats := c.usageTracker.GetSessionStats()
	lastStats := c.usageTracker.GetLastRequestStats()

	var content strings.Builder
	content.WriteString("## Usage Statistics\n\n")
	if lastStats != nil {
		fmt.Fprintf(&content, "**Last Request:** %d input + %d output tokens = $%.6f\n\n",
			lastStats.InputTokens, lastStats.OutputTokens, lastStats.TotalCost)
	}
	fmt.Fprintf(&content, "**Session Total:** %d input + %d output tokens = $%.6f (%d requests)\n",
		sessionStats.TotalInputTokens, sessionStats.TotalOutputTokens, sessionStats.TotalCost, sessionStats.RequestCount)
	if sessionStats.EstimatedCount > 0 {
		fmt.Fprintf(&content, "\n_%d of %d requests estimated from text length._\n",
			sessionStats.EstimatedCount, sessionStats.RequestCount)
	}
	c.DisplayInfo(content.String())
}

// RecordUsage adds a request's usage to the tracker, if any.
func (c *CLI) RecordUsage(usage tokens.Usage) {
	if c.usageTracker != nil {
		c.usageTracker.Record(usage)
	}
}

// DisplayUsageAfterResponse prints the running usage line under a reply.
func (c *CLI) DisplayUsageAfterResponse() {
	if c.usageTracker == nil {
		return
	}
	fmt.Fprintln(c.out, lipgloss.NewStyle().PaddingLeft(2).Render(c.usageTracker.RenderUsageInfo()))
}

// IsSlashCommand reports whether input is a slash command.
func (c *CLI) IsSlashCommand(input string) bool {
	return strings.HasPrefix(input, "/")
}

// SlashCommandResult is the outcome of a slash command.
type SlashCommandResult struct {
	Handled      bool
	ClearHistory bool
	Quit         bool
}

// HandleSlashCommand runs a slash command. Clearing the conversation and
// quitting are left to the caller.
func (c *CLI) HandleSlashCommand(input string) SlashCommandResult {
	cmd := GetCommandByName(strings.TrimSpace(input))
	if cmd == nil {
		return SlashCommandResult{}
	}

	switch cmd.Name {
	case "/help":
		c.DisplayHelp()
	case "/about":
		c.DisplayAbout()
	case "/languages":
		c.DisplayLanguages()
	case "/usage":
		c.DisplayUsageStats()
	case "/clear":
		if c.usageTracker != nil {
			c.usageTracker.Reset()
		}
		c.DisplayInfo("Conversation cleared. Starting fresh.")
		return SlashCommandResult{Handled: true, ClearHistory: true}
	case "/quit":
		fmt.Fprintln(c.out, "\n  Goodbye!")
		return SlashCommandResult{Handled: true, Quit: true}
	}
	return SlashCommandResult{Handled: true}
}

// TerminalWidth returns the usable width of the terminal on stdout, 80
// when it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 24 {
		return 80
	}
	// two columns of padding on each side
	return width - 4
}
