package cmd

import (
	"fmt"

	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/spf13/cobra"
)

var promptWelcome bool

var promptCmd = &cobra.Command{
	Use:       "prompt <language>",
	Short:     "Print the system prompt for a language",
	Long:      `Print the system prompt sent with questions in the given language, or its welcome message with --welcome. Unknown languages fall back to english.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"english", "arabic", "urdu", "bengali"},
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := language.Parse(args[0])
		if promptWelcome {
			fmt.Fprintln(cmd.OutOrStdout(), language.WelcomeMessage(tag))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), language.SystemPrompt(tag))
		return nil
	},
}

func init() {
	promptCmd.Flags().BoolVar(&promptWelcome, "welcome", false, "print the welcome message instead")
	rootCmd.AddCommand(promptCmd)
}
