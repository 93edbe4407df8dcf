package ui

import "testing"

func TestGetCommandByName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/help", "/help"},
		{"/?", "/help"},
		{"/exit", "/quit"},
		{"/lang", "/languages"},
		{"/unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := GetCommandByName(tt.input)
			if tt.want == "" {
				if cmd != nil {
					t.Errorf("expected no command, got %s", cmd.Name)
				}
				return
			}
			if cmd == nil || cmd.Name != tt.want {
				t.Errorf("GetCommandByName(%q) = %v, want %s", tt.input, cmd, tt.want)
			}
		})
	}
}

func TestFuzzyMatchCommands(t *testing.T) {
	t.Run("slash lists everything", func(t *testing.T) {
		matches := FuzzyMatchCommands("/", SlashCommands)
		if len(matches) != len(SlashCommands) {
			t.Fatalf("got %d matches, want %d", len(matches), len(SlashCommands))
		}
		if matches[0].Command.Name != SlashCommands[0].Name {
			t.Errorf("order changed: first is %s", matches[0].Command.Name)
		}
	})

	tests := []struct {
		query string
		first string
	}{
		{"/help", "/help"},
		{"/us", "/usage"},
		{"/q", "/quit"},
		{"/lng", "/languages"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches := FuzzyMatchCommands(tt.query, SlashCommands)
			if len(matches) == 0 {
				t.Fatalf("no matches for %q", tt.query)
			}
			if matches[0].Command.Name != tt.first {
				t.Errorf("best match = %s, want %s", matches[0].Command.Name, tt.first)
			}
		})
	}

	t.Run("no match", func(t *testing.T) {
		if matches := FuzzyMatchCommands("/zzz", SlashCommands); len(matches) != 0 {
			t.Errorf("expected no matches, got %d", len(matches))
		}
	})
}

func TestGetAllCommandNames(t *testing.T) {
	names := GetAllCommandNames()
	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			t.Errorf("duplicate command name %s", name)
		}
		seen[name] = true
	}
	for _, cmd := range SlashCommands {
		if !seen[cmd.Name] {
			t.Errorf("missing %s", cmd.Name)
		}
	}
}

func TestCommandsInCategory(t *testing.T) {
	info := CommandsInCategory("Info")
	system := CommandsInCategory("System")
	if len(info)+len(system) != len(SlashCommands) {
		t.Fatalf("categories cover %d of %d commands", len(info)+len(system), len(SlashCommands))
	}
	if system[len(system)-1].Name != "/quit" {
		t.Errorf("last system command = %s", system[len(system)-1].Name)
	}
	if len(CommandsInCategory("Tools")) != 0 {
		t.Error("unknown category should be empty")
	}
}
