package cmd

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-isatty"
	"github.com/ramizpolic/islamicai/internal/format"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/session"
	"github.com/ramizpolic/islamicai/internal/ui"
	"github.com/spf13/cobra"
)

var (
	renderLanguage string
	renderPlain    bool
	renderJSON     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Format a reply the way the chat displays it",
	Long: `Format an assistant reply containing [verse-section], [hadith],
[translation] and [arabic-text] markers, bullet lists and quotes. The
reply is read from the file, or from stdin when no file is given.

Without --language the language is detected from the reply. Output is
plain when stdout is not a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read reply: %w", err)
			}
			text = string(data)
		} else {
			var err error
			if text, err = readInput(cmd.InOrStdin(), nil); err != nil {
				return err
			}
		}

		tag := language.Parse(renderLanguage)
		if renderLanguage == "" {
			tag = language.Detect(text)
		}
		segments := format.Format(text, tag)
		out := cmd.OutOrStdout()

		switch {
		case renderJSON:
			data, err := sonic.ConfigStd.MarshalIndent(segments, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode segments: %w", err)
			}
			fmt.Fprintln(out, string(data))
		case renderPlain || !isTerminal(os.Stdout):
			fmt.Fprintln(out, format.Plain(segments))
		default:
			fmt.Fprintln(out, ui.NewSegmentRenderer(ui.TerminalWidth(), false).Render(segments))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderLanguage, "language", "l", "", "language of the reply (english, arabic, urdu, bengali)")
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "print without styling")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the segments as JSON")
	renderCmd.MarkFlagsMutuallyExclusive("plain", "json")
	rootCmd.AddCommand(renderCmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// renderPlainReply formats a reply as unstyled text.
func renderPlainReply(msg session.Message) string {
	return format.Plain(format.Format(msg.Text, msg.Language))
}
