package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [text...]",
	Short: "Print the reply language chosen for a text",
	Long: `Print the language a question would be answered in: english, arabic,
urdu or bengali. The text is read from the arguments, or from stdin when
there are none.

Example:
  islamicai detect "ما هي أركان الإسلام؟"
  echo "নামাজের নিয়ম কী?" | islamicai detect`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), language.Detect(text))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

// readInput joins args, or reads all of in when there are none.
func readInput(in io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
