package language

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var tableData []byte

// Direction is the layout direction of a language.
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Honorifics holds the respectful phrases appended after the names of the
// Prophet, his companions and scholars.
type Honorifics struct {
	Prophet   string `yaml:"prophet"`
	Companion string `yaml:"companion"`
	Scholar   string `yaml:"scholar"`
}

// Config is the presentation metadata for one language. Values are returned
// by copy so callers can never mutate the shared table.
type Config struct {
	Name        string     `yaml:"name"`
	Direction   Direction  `yaml:"direction"`
	Font        string     `yaml:"font"`
	Honorifics  Honorifics `yaml:"honorifics"`
	Placeholder string     `yaml:"placeholder"`
	Thinking    string     `yaml:"thinking"`
	Send        string     `yaml:"send"`
	Greeting    string     `yaml:"greeting"`
}

type entry struct {
	Config       `yaml:",inline"`
	Welcome      string `yaml:"welcome"`
	SystemPrompt string `yaml:"system_prompt"`
}

var table = mustLoadTable(tableData)

func loadTable(data []byte) (map[Tag]entry, error) {
	var raw map[Tag]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse language table: %w", err)
	}

	for _, tag := range All() {
		e, ok := raw[tag]
		if !ok {
			return nil, fmt.Errorf("language table is missing %q", tag)
		}
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("language %q: %w", tag, err)
		}
	}
	for tag := range raw {
		if !tag.Supported() {
			return nil, fmt.Errorf("language table has unsupported entry %q", tag)
		}
	}

	return raw, nil
}

func mustLoadTable(data []byte) map[Tag]entry {
	t, err := loadTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

func (e entry) validate() error {
	fields := map[string]string{
		"name":                 e.Name,
		"font":                 e.Font,
		"honorifics.prophet":   e.Honorifics.Prophet,
		"honorifics.companion": e.Honorifics.Companion,
		"honorifics.scholar":   e.Honorifics.Scholar,
		"placeholder":          e.Placeholder,
		"thinking":             e.Thinking,
		"send":                 e.Send,
		"greeting":             e.Greeting,
		"welcome":              e.Welcome,
		"system_prompt":        e.SystemPrompt,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("field %s is empty", name)
		}
	}
	if e.Direction != LeftToRight && e.Direction != RightToLeft {
		return fmt.Errorf("invalid direction %q", e.Direction)
	}
	return nil
}

func lookup(tag Tag) entry {
	return table[Parse(string(tag))]
}

// ConfigFor returns the presentation metadata for tag, falling back to the
// english entry for anything unsupported.
func ConfigFor(tag Tag) Config {
	return lookup(tag).Config
}

// SystemPrompt returns the system instruction sent to the model when the
// user writes in tag. It encodes the block marker vocabulary that the reply
// formatter understands.
func SystemPrompt(tag Tag) string {
	return lookup(tag).SystemPrompt
}

// WelcomeMessage returns the greeting that opens a new conversation.
func WelcomeMessage(tag Tag) string {
	return lookup(tag).Welcome
}
