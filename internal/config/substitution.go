package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// ${env://NAME} or ${env://NAME:-fallback}
	envVarPattern = regexp.MustCompile(`\$\{env://([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)
	// ${name} or ${name:-fallback}
	argPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)
)

// lookupFunc resolves a variable name. ok is false when it is unset.
type lookupFunc func(name string) (value string, ok bool)

// substitute replaces every match of pattern with the looked-up value,
// the inline fallback, or collects an error for required variables.
func substitute(pattern *regexp.Regexp, content, kind string, lookup lookupFunc) (string, error) {
	var missing []string

	result := pattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		name := groups[1]
		hasFallback := strings.Contains(match, ":-")

		if value, ok := lookup(name); ok {
			return value
		}
		if hasFallback {
			return groups[2]
		}
		missing = append(missing, name)
		return match
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%s substitution failed: missing %s", kind, strings.Join(missing, ", "))
	}
	return result, nil
}

// EnvSubstituter expands ${env://VAR} and ${env://VAR:-default} references
// in configuration files. Empty variables count as unset.
type EnvSubstituter struct{}

// SubstituteEnvVars returns content with environment references expanded.
// It fails listing every referenced variable that is unset and has no
// default.
func (e *EnvSubstituter) SubstituteEnvVars(content string) (string, error) {
	return substitute(envVarPattern, content, "environment variable", func(name string) (string, bool) {
		value := os.Getenv(name)
		return value, value != ""
	})
}

// ArgsSubstituter expands ${name} and ${name:-default} references in
// question files with values passed on the command line.
type ArgsSubstituter struct {
	args map[string]string
}

// NewArgsSubstituter creates a substituter for the given values.
func NewArgsSubstituter(args map[string]string) *ArgsSubstituter {
	return &ArgsSubstituter{args: args}
}

// SubstituteArgs returns content with argument references expanded. An
// argument passed with an empty value is still considered set.
func (a *ArgsSubstituter) SubstituteArgs(content string) (string, error) {
	return substitute(argPattern, content, "argument", func(name string) (string, bool) {
		value, ok := a.args[name]
		return value, ok
	})
}

// HasEnvVars reports whether content references environment variables.
func HasEnvVars(content string) bool {
	return envVarPattern.MatchString(content)
}

// HasScriptArgs reports whether content references arguments.
func HasScriptArgs(content string) bool {
	return argPattern.MatchString(content)
}
