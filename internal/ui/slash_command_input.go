package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ramizpolic/islamicai/internal/language"
)

var (
	newlineKeys = key.NewBinding(key.WithKeys("ctrl+j", "alt+enter"))
	enterKey    = key.NewBinding(key.WithKeys("enter"))
	upKey       = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up"))
	downKey     = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down"))
	tabKey      = key.NewBinding(key.WithKeys("tab"))
	escKey      = key.NewBinding(key.WithKeys("esc"))
)

// SlashCommandInput is the question input. It completes slash commands in
// a popup and localizes its placeholder and hints to the language detected
// in the text typed so far.
type SlashCommandInput struct {
	textarea    textarea.Model
	commands    []SlashCommand
	detect      func(string) language.Tag
	tag         language.Tag
	showPopup   bool
	filtered    []FuzzyMatch
	selected    int
	width       int
	lastValue   string
	popupHeight int
	title       string
	quitting    bool
	cancelled   bool
	value       string
	submitNext  bool
	// renderedLines is how many lines the last View produced
	renderedLines int
}

// NewSlashCommandInput creates an input of the given width. detect maps the
// current text to a language; nil uses language.Detect.
func NewSlashCommandInput(width int, title string, detect func(string) language.Tag) *SlashCommandInput {
	if detect == nil {
		detect = language.Detect
	}
	theme := GetTheme()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 5000
	ta.SetWidth(width - 6)
	ta.SetHeight(3)
	ta.Focus()

	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(theme.VeryMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(theme.Text)
	ta.FocusedStyle.Prompt = lipgloss.NewStyle()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Cursor.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	s := &SlashCommandInput{
		textarea:    ta,
		commands:    SlashCommands,
		detect:      detect,
		width:       width,
		popupHeight: 7,
		title:       title,
	}
	s.relocalize("")
	return s
}

// relocalize updates the placeholder for the language of value.
func (s *SlashCommandInput) relocalize(value string) {
	s.tag = s.detect(value)
	s.textarea.Placeholder = language.ConfigFor(s.tag).Placeholder
}

// Init implements tea.Model
func (s *SlashCommandInput) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model
func (s *SlashCommandInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// a command chosen from the popup is submitted after one redraw
	if s.submitNext {
		s.value = s.textarea.Value()
		s.quitting = true
		return s, tea.Quit
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		s.textarea, cmd = s.textarea.Update(msg)
		return s, cmd
	}

	if s.showPopup {
		switch {
		case key.Matches(keyMsg, upKey):
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case key.Matches(keyMsg, downKey):
			if s.selected < len(s.filtered)-1 && s.selected < s.popupHeight-1 {
				s.selected++
			}
			return s, nil
		case key.Matches(keyMsg, tabKey):
			s.complete()
			return s, nil
		case key.Matches(keyMsg, enterKey):
			if s.complete() {
				s.submitNext = true
			}
			return s, nil
		case key.Matches(keyMsg, escKey):
			s.showPopup = false
			s.selected = 0
			return s, nil
		}
	} else {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			s.quitting = true
			s.cancelled = true
			return s, tea.Quit
		case "ctrl+d":
			s.value = s.textarea.Value()
			s.quitting = true
			return s, tea.Quit
		}

		if !key.Matches(keyMsg, newlineKeys) && key.Matches(keyMsg, enterKey) && !strings.Contains(s.textarea.Value(), "\n") {
			s.value = s.textarea.Value()
			s.quitting = true
			return s, tea.Quit
		}
	}

	s.textarea, cmd = s.textarea.Update(keyMsg)

	value := s.textarea.Value()
	if value != s.lastValue {
		s.lastValue = value
		s.relocalize(value)

		if strings.HasPrefix(value, "/") && !strings.ContainsAny(value, " \n") {
			s.showPopup = true
			s.filtered = FuzzyMatchCommands(value, s.commands)
			s.selected = 0
		} else {
			s.showPopup = false
		}
	}
	return s, cmd
}

// complete replaces the input with the selected command.
func (s *SlashCommandInput) complete() bool {
	if s.selected >= len(s.filtered) {
		return false
	}
	s.textarea.SetValue(s.filtered[s.selected].Command.Name)
	s.textarea.CursorEnd()
	s.showPopup = false
	s.selected = 0
	return true
}

// View implements tea.Model
func (s *SlashCommandInput) View() string {
	theme := GetTheme()
	cfg := language.ConfigFor(s.tag)

	titleStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		MarginBottom(1)

	inputBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		BorderForeground(theme.Primary).
		PaddingLeft(1).
		Width(s.width)

	var view strings.Builder
	view.WriteString(titleStyle.Render(s.title))
	view.WriteString("\n")
	view.WriteString(inputBoxStyle.Render(s.textarea.View()))
	s.renderedLines = 2 + s.textarea.Height()

	if s.showPopup && len(s.filtered) > 0 {
		view.WriteString("\n")
		view.WriteString(s.renderPopup())
		// items, border, padding and footer
		s.renderedLines += 1 + min(len(s.filtered), s.popupHeight) + 5
	}

	helpText := "enter " + strings.ToLower(cfg.Send) + " • ctrl+j / alt+enter new line"
	if strings.Contains(s.textarea.Value(), "\n") {
		helpText = "ctrl+d " + strings.ToLower(cfg.Send) + " • enter new line"
	}
	if strings.TrimSpace(s.textarea.Value()) != "" {
		helpText += " • " + cfg.Name
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(theme.VeryMuted).
		MarginTop(1)
	view.WriteString("\n")
	view.WriteString(helpStyle.Render(helpText))
	s.renderedLines += 2

	return view.String()
}

func (s *SlashCommandInput) renderPopup() string {
	theme := GetTheme()

	popupStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Width(s.width - 2).
		MarginLeft(2)

	var items []string
	for i := 0; i < min(len(s.filtered), s.popupHeight); i++ {
		cmd := s.filtered[i].Command

		indicator := "  "
		nameStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		descStyle := lipgloss.NewStyle().Foreground(theme.Muted)
		if i == s.selected {
			indicator = lipgloss.NewStyle().Foreground(theme.Primary).Render("> ")
			nameStyle = nameStyle.Foreground(theme.Primary)
			descStyle = descStyle.Foreground(theme.Text)
		}

		const nameWidth = 15
		desc := cmd.Description
		if maxDescLen := s.width - nameWidth - 10; len(desc) > maxDescLen && maxDescLen > 3 {
			desc = desc[:maxDescLen-3] + "..."
		}

		items = append(items, indicator+nameStyle.Width(nameWidth-2).Render(cmd.Name)+descStyle.Render(desc))
	}

	footer := lipgloss.NewStyle().
		Foreground(theme.VeryMuted).
		Italic(true).
		Render("↑↓ navigate • tab complete • ↵ select • esc dismiss")

	return popupStyle.Render(strings.Join(items, "\n") + "\n\n" + footer)
}

// Value returns the submitted text.
func (s *SlashCommandInput) Value() string {
	return s.value
}

// Cancelled reports whether the user left without submitting.
func (s *SlashCommandInput) Cancelled() bool {
	return s.cancelled
}

// Placeholder returns the placeholder currently shown.
func (s *SlashCommandInput) Placeholder() string {
	return s.textarea.Placeholder
}

// RenderedLines returns how many lines the last View produced.
func (s *SlashCommandInput) RenderedLines() int {
	return s.renderedLines
}
