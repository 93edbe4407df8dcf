// Package config loads islamicai settings from flags, environment variables
// and an optional YAML or JSON config file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override settings, e.g.
// ISLAMICAI_MODEL or ISLAMICAI_MAX_TOKENS.
const EnvPrefix = "ISLAMICAI"

// Config holds every setting the assistant reads.
type Config struct {
	Model            string  `mapstructure:"model"`
	ProviderAPIKey   string  `mapstructure:"provider-api-key"`
	ProviderURL      string  `mapstructure:"provider-url"`
	Temperature      float32 `mapstructure:"temperature"`
	MaxTokens        int     `mapstructure:"max-tokens"`
	FrequencyPenalty float32 `mapstructure:"frequency-penalty"`
	PresencePenalty  float32 `mapstructure:"presence-penalty"`
	TLSSkipVerify    bool    `mapstructure:"tls-skip-verify"`
	Referer          string  `mapstructure:"referer"`
	Title            string  `mapstructure:"title"`

	// Language is the welcome language, english when empty
	Language string `mapstructure:"language"`

	// Hooks is an extra hooks file read after the default locations
	Hooks   string `mapstructure:"hooks"`
	NoHooks bool   `mapstructure:"no-hooks"`

	Compact bool `mapstructure:"compact"`
	Plain   bool `mapstructure:"plain"`
	Debug   bool `mapstructure:"debug"`
	Quiet   bool `mapstructure:"quiet"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", models.DefaultModel)
	v.SetDefault("temperature", models.DefaultTemperature)
	v.SetDefault("max-tokens", models.DefaultMaxTokens)
	v.SetDefault("frequency-penalty", models.DefaultFrequencyPenalty)
	v.SetDefault("presence-penalty", models.DefaultPresencePenalty)
	v.SetDefault("referer", models.DefaultReferer)
	v.SetDefault("title", models.DefaultTitle)
	v.SetDefault("language", string(language.English))
}

// BindEnv makes ISLAMICAI_* environment variables override settings.
// Dashes in setting names become underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadConfigWithEnvSubstitution reads the config file at path into v after
// expanding ${env://VAR} references. The format follows the file extension,
// YAML when there is none.
func LoadConfigWithEnvSubstitution(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	content := string(data)
	if HasEnvVars(content) {
		substituter := &EnvSubstituter{}
		content, err = substituter.SubstituteEnvVars(content)
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}

	configType := strings.TrimPrefix(filepath.Ext(path), ".")
	switch configType {
	case "yml", "yaml", "json":
	default:
		configType = "yaml"
	}
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader([]byte(content))); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// FindConfigFile returns the first existing default config file in dir:
// .islamicai.yml, .islamicai.yaml or .islamicai.json.
func FindConfigFile(dir string) (string, bool) {
	for _, name := range []string{".islamicai.yml", ".islamicai.yaml", ".islamicai.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Init prepares v with defaults, ISLAMICAI_* environment overrides and the
// config file at path. An empty path looks for a default config file in the
// home directory. It returns the path of the file loaded, empty if none.
func Init(v *viper.Viper, path string) (string, error) {
	SetDefaults(v)
	BindEnv(v)

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil
		}
		if path, _ = FindConfigFile(home); path == "" {
			return "", nil
		}
	}
	if err := LoadConfigWithEnvSubstitution(v, path); err != nil {
		return "", err
	}
	return path, nil
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.MaxTokens < 0 {
		return nil, fmt.Errorf("max-tokens must not be negative, got %d", cfg.MaxTokens)
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2, got %g", cfg.Temperature)
	}
	if _, _, err := models.ParseModelString(cfg.Model); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ProviderConfig converts the settings to a provider configuration.
func (c *Config) ProviderConfig() *models.ProviderConfig {
	temperature := c.Temperature
	frequency := c.FrequencyPenalty
	presence := c.PresencePenalty

	return &models.ProviderConfig{
		ModelString:      c.Model,
		ProviderAPIKey:   c.ProviderAPIKey,
		ProviderURL:      c.ProviderURL,
		Temperature:      &temperature,
		MaxTokens:        c.MaxTokens,
		FrequencyPenalty: &frequency,
		PresencePenalty:  &presence,
		TLSSkipVerify:    c.TLSSkipVerify,
		Referer:          c.Referer,
		Title:            c.Title,
	}
}

// LanguageTag returns the configured welcome language.
func (c *Config) LanguageTag() language.Tag {
	return language.Parse(c.Language)
}
