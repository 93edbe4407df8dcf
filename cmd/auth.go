package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ramizpolic/islamicai/internal/auth"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored API keys",
	Long: `Manage API keys stored for model providers.

Stored keys are used when --provider-api-key is not given and take
precedence over environment variables.

Examples:
  islamicai auth login openrouter
  islamicai auth logout openrouter
  islamicai auth status`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login <provider>",
	Short: "Store the API key of a provider",
	Long: `Store the API key of a provider. The key is read from the terminal
without echo, or from stdin when it is not a terminal:

  echo "$OPENROUTER_API_KEY" | islamicai auth login openrouter`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout <provider>",
	Short: "Remove the stored API key of a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have a key",
	Long: `Show, for every provider that needs an API key, whether one is stored
or set in the environment. Keys are never printed.`,
	RunE: runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

// keyedProvider validates that name is a provider that takes an API key.
func keyedProvider(name string) (models.ProviderInfo, error) {
	info, err := models.GetGlobalRegistry().GetProvider(strings.ToLower(name))
	if err != nil {
		return info, err
	}
	if !info.RequiresKey {
		return info, fmt.Errorf("provider %s does not use an API key", info.ID)
	}
	return info, nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	info, err := keyedProvider(args[0])
	if err != nil {
		return err
	}

	cm, err := auth.NewCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Enter your %s API key: ", info.Name)
	key, err := readSecret(cmd.InOrStdin())
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("failed to read API key: %w", err)
	}

	if err := cm.SetAPIKey(info.ID, key); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Stored %s API key in %s\n", info.Name, cm.GetCredentialsPath())
	return nil
}

// readSecret reads one line, without echo when in is a terminal.
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		key, err := term.ReadPassword(int(f.Fd()))
		return strings.TrimSpace(string(key)), err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	info, err := keyedProvider(args[0])
	if err != nil {
		return err
	}

	cm, err := auth.NewCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	out := cmd.OutOrStdout()
	cred, err := cm.GetCredential(info.ID)
	if err != nil {
		return fmt.Errorf("failed to check stored credentials: %w", err)
	}
	if cred == nil {
		fmt.Fprintf(out, "No %s API key is stored.\n", info.Name)
		return nil
	}

	if err := cm.RemoveAPIKey(info.ID); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	fmt.Fprintf(out, "✓ Removed the stored %s API key.\n", info.Name)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cm, err := auth.NewCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Authentication Status")
	fmt.Fprintln(out, "=====================")
	fmt.Fprintf(out, "Credentials file: %s\n\n", cm.GetCredentialsPath())

	registry := models.GetGlobalRegistry()
	for _, id := range registry.GetSupportedProviders() {
		info, err := registry.GetProvider(id)
		if err != nil || !info.RequiresKey {
			continue
		}

		fmt.Fprintf(out, "%s: ", info.Name)
		cred, err := cm.GetCredential(id)
		switch {
		case err != nil:
			fmt.Fprintf(out, "error reading credentials: %v\n", err)
		case cred != nil && cred.APIKey != "":
			fmt.Fprintf(out, "✓ stored %s\n", cred.CreatedAt.Format("2006-01-02 15:04:05"))
		default:
			fmt.Fprintln(out, "✗ not stored")
		}
		if err := registry.ValidateEnvironment(id, ""); err == nil {
			fmt.Fprintf(out, "  (%s is set)\n", strings.Join(info.Env, " or "))
		}
	}

	fmt.Fprintln(out, "\nTo store a key:")
	fmt.Fprintln(out, "  islamicai auth login openrouter")
	return nil
}
