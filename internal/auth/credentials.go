// Package auth stores provider API keys on disk so they need not be passed
// on every run.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// CredentialStore holds the stored API key of each provider, keyed by
// provider ID such as "openrouter".
type CredentialStore struct {
	Providers map[string]*Credential `json:"providers,omitempty"`
}

// Credential is a stored API key.
type Credential struct {
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialManager reads and writes the credentials file. The file is only
// ever readable by its owner.
type CredentialManager struct {
	credentialsPath string
}

// NewCredentialManager creates a manager for the default credentials file,
// $XDG_CONFIG_HOME/islamicai/credentials.json or
// ~/.config/islamicai/credentials.json.
func NewCredentialManager() (*CredentialManager, error) {
	credentialsPath, err := getCredentialsPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine credentials path: %w", err)
	}
	return &CredentialManager{credentialsPath: credentialsPath}, nil
}

// NewCredentialManagerAt creates a manager for the credentials file at path.
func NewCredentialManagerAt(path string) *CredentialManager {
	return &CredentialManager{credentialsPath: path}
}

func getCredentialsPath() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "islamicai", "credentials.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "islamicai", "credentials.json"), nil
}

// LoadCredentials reads the credentials file. A missing file is an empty
// store.
func (cm *CredentialManager) LoadCredentials() (*CredentialStore, error) {
	data, err := os.ReadFile(cm.credentialsPath)
	if os.IsNotExist(err) {
		return &CredentialStore{Providers: map[string]*Credential{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var store CredentialStore
	if err := sonic.ConfigStd.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if store.Providers == nil {
		store.Providers = map[string]*Credential{}
	}
	return &store, nil
}

// SaveCredentials writes store with 0600 permissions, creating the
// directory when needed.
func (cm *CredentialManager) SaveCredentials(store *CredentialStore) error {
	if err := os.MkdirAll(filepath.Dir(cm.credentialsPath), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := sonic.ConfigStd.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.WriteFile(cm.credentialsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// SetAPIKey stores the API key of provider, replacing any previous one.
func (cm *CredentialManager) SetAPIKey(provider, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if err := validateAPIKey(provider, apiKey); err != nil {
		return err
	}

	store, err := cm.LoadCredentials()
	if err != nil {
		return err
	}
	store.Providers[provider] = &Credential{
		APIKey:    apiKey,
		CreatedAt: time.Now(),
	}
	return cm.SaveCredentials(store)
}

// GetCredential returns the stored credential of provider, nil if none.
func (cm *CredentialManager) GetCredential(provider string) (*Credential, error) {
	store, err := cm.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return store.Providers[provider], nil
}

// RemoveAPIKey deletes the stored key of provider. The file is removed
// once no keys are left.
func (cm *CredentialManager) RemoveAPIKey(provider string) error {
	store, err := cm.LoadCredentials()
	if err != nil {
		return err
	}
	delete(store.Providers, provider)

	if len(store.Providers) == 0 {
		if err := os.Remove(cm.credentialsPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove credentials file: %w", err)
		}
		return nil
	}
	return cm.SaveCredentials(store)
}

// StoredProviders returns the providers with a stored key, sorted.
func (cm *CredentialManager) StoredProviders() ([]string, error) {
	store, err := cm.LoadCredentials()
	if err != nil {
		return nil, err
	}
	providers := make([]string, 0, len(store.Providers))
	for provider, cred := range store.Providers {
		if cred != nil && cred.APIKey != "" {
			providers = append(providers, provider)
		}
	}
	sort.Strings(providers)
	return providers, nil
}

// GetCredentialsPath returns the path of the credentials file.
func (cm *CredentialManager) GetCredentialsPath() string {
	return cm.credentialsPath
}

// keyPrefixes are the known key formats. Keys of other providers are only
// checked for length.
var keyPrefixes = map[string]string{
	"openrouter":  "sk-or-",
	"anthropic":   "sk-ant-",
	"openai":      "sk-",
	"huggingface": "hf_",
}

func validateAPIKey(provider, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if prefix, ok := keyPrefixes[provider]; ok && !strings.HasPrefix(apiKey, prefix) {
		return fmt.Errorf("invalid %s API key format (should start with '%s')", provider, prefix)
	}
	if len(apiKey) < 20 {
		return fmt.Errorf("API key appears to be too short")
	}
	return nil
}

// StoredAPIKey returns the stored key of provider from the default
// credentials file, empty when there is none or the file is unreadable.
func StoredAPIKey(provider string) string {
	cm, err := NewCredentialManager()
	if err != nil {
		return ""
	}
	cred, err := cm.GetCredential(provider)
	if err != nil || cred == nil {
		return ""
	}
	return cred.APIKey
}
