package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows an animated label while a reply is pending. It runs its own
// tea.Program on stderr so it never mixes with rendered replies on stdout.
type Spinner struct {
	done   chan struct{}
	prog   *tea.Program
	ctx    context.Context
	cancel context.CancelFunc
}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update ignores key presses: the question cannot be resubmitted or edited
// while the reply is pending.
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	theme := GetTheme()
	return fmt.Sprintf(" %s %s",
		StyleHeader(theme).Render(m.spinner.View()),
		lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Render(m.message))
}

type quitMsg struct{}

// NewSpinner creates a spinner showing message, typically the language's
// "thinking" label.
func NewSpinner(message string) *Spinner {
	return newSpinner(message, os.Stderr)
}

func newSpinner(message string, out io.Writer) *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = s.Style.Foreground(GetTheme().Primary)

	ctx, cancel := context.WithCancel(context.Background())
	prog := tea.NewProgram(spinnerModel{spinner: s, message: message},
		tea.WithOutput(out), tea.WithoutCatchPanics())

	return &Spinner{
		done:   make(chan struct{}),
		prog:   prog,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the animation in the background.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		go func() {
			<-s.ctx.Done()
			s.prog.Send(quitMsg{})
		}()
		if _, err := s.prog.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
		}
	}()
}

// Stop ends the animation and waits for the terminal to be restored.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.done
}
