package ui

import (
	"sort"
	"strings"
)

// SlashCommand is a command typed at the prompt, such as /help.
type SlashCommand struct {
	Name        string
	Description string
	Aliases     []string
	Category    string // "Info" or "System"
}

// SlashCommands lists every command the chat understands.
var SlashCommands = []SlashCommand{
	{
		Name:        "/help",
		Description: "Show available commands and usage information",
		Category:    "Info",
		Aliases:     []string{"/h", "/?"},
	},
	{
		Name:        "/about",
		Description: "About the assistant, its sources and guidelines",
		Category:    "Info",
		Aliases:     []string{"/a"},
	},
	{
		Name:        "/languages",
		Description: "List supported languages",
		Category:    "Info",
		Aliases:     []string{"/l", "/lang"},
	},
	{
		Name:        "/usage",
		Description: "Show token usage statistics",
		Category:    "Info",
		Aliases:     []string{"/u"},
	},
	{
		Name:        "/clear",
		Description: "Clear conversation and start fresh",
		Category:    "System",
		Aliases:     []string{"/c", "/cls"},
	},
	{
		Name:        "/quit",
		Description: "Exit the application",
		Category:    "System",
		Aliases:     []string{"/q", "/exit"},
	},
}

// GetCommandByName looks up a command by name or alias, nil if unknown.
func GetCommandByName(name string) *SlashCommand {
	for i := range SlashCommands {
		cmd := &SlashCommands[i]
		if cmd.Name == name {
			return cmd
		}
		for _, alias := range cmd.Aliases {
			if alias == name {
				return cmd
			}
		}
	}
	return nil
}

// CommandsInCategory returns the commands of category in declaration order.
func CommandsInCategory(category string) []SlashCommand {
	var cmds []SlashCommand
	for _, cmd := range SlashCommands {
		if cmd.Category == category {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// GetAllCommandNames returns every command name and alias.
func GetAllCommandNames() []string {
	var names []string
	for _, cmd := range SlashCommands {
		names = append(names, cmd.Name)
		names = append(names, cmd.Aliases...)
	}
	return names
}

// FuzzyMatch is a command matched against typed input. Higher scores are
// better matches.
type FuzzyMatch struct {
	Command *SlashCommand
	Score   int
}

// FuzzyMatchCommands ranks commands against query. A bare "/" matches every
// command in declaration order. Otherwise a command matches when the query
// is a prefix of its name or an alias, or when the query's letters appear
// in order in the name.
func FuzzyMatchCommands(query string, commands []SlashCommand) []FuzzyMatch {
	query = strings.ToLower(strings.TrimSpace(query))

	var matches []FuzzyMatch
	for i := range commands {
		cmd := &commands[i]
		if query == "" || query == "/" {
			matches = append(matches, FuzzyMatch{Command: cmd})
			continue
		}
		if score := scoreCommand(query, cmd); score > 0 {
			matches = append(matches, FuzzyMatch{Command: cmd, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func scoreCommand(query string, cmd *SlashCommand) int {
	name := strings.ToLower(cmd.Name)
	switch {
	case name == query:
		return 1000
	case strings.HasPrefix(name, query):
		return 500 - len(name)
	}
	for _, alias := range cmd.Aliases {
		if strings.ToLower(alias) == query {
			return 400
		}
	}
	if subsequence(query, name) {
		return 100 - len(name)
	}
	return 0
}

// subsequence reports whether every rune of needle appears in haystack in
// order.
func subsequence(needle, haystack string) bool {
	rest := haystack
	for _, r := range needle {
		i := strings.IndexRune(rest, r)
		if i < 0 {
			return false
		}
		rest = rest[i+len(string(r)):]
	}
	return true
}
