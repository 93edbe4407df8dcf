package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/ramizpolic/islamicai/internal/chat"
	"github.com/ramizpolic/islamicai/internal/config"
	"github.com/ramizpolic/islamicai/internal/hooks"
	"github.com/ramizpolic/islamicai/internal/language"
	"github.com/ramizpolic/islamicai/internal/models"
	"github.com/ramizpolic/islamicai/internal/session"
	"github.com/ramizpolic/islamicai/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var (
	configFile string
	promptFlag string

	v = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "islamicai",
	Short: "Ask questions about Islam in your own language",
	Long: `islamicai is a terminal assistant for Islamic knowledge. Ask a question in
English, Arabic, Urdu or Bengali and the answer comes back in the same
language, citing the Quran and authentic Hadith.

The model is selected with --model in provider:model form. Replies go
through OpenRouter by default:
- OpenRouter (default): openrouter:google/gemini-2.5-flash-preview-05-20
- OpenAI: openai:gpt-4o
- Anthropic: anthropic:claude-sonnet-4-20250514
- Google: google:gemini-2.5-flash
- Hugging Face: huggingface:meta-llama/Llama-3.1-8B-Instruct
- Ollama: ollama:qwen2.5:3b
- Offline demo: mock:islamicai

Example:
  islamicai
  islamicai -p "What are the pillars of Islam?"
  islamicai -m ollama:qwen2.5:3b --compact
  echo "What is zakat?" | islamicai --quiet`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context(), cmd.OutOrStdout())
	},
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default is $HOME/.islamicai.yml)")
	flags.StringP("model", "m", models.DefaultModel, "model to use (format: provider:model)")
	flags.String("provider-api-key", "", "API key for the provider")
	flags.String("provider-url", "", "base URL for the provider API")
	flags.Float32("temperature", models.DefaultTemperature, "sampling temperature (0-2)")
	flags.Int("max-tokens", models.DefaultMaxTokens, "maximum tokens in a reply")
	flags.Float32("frequency-penalty", models.DefaultFrequencyPenalty, "frequency penalty")
	flags.Float32("presence-penalty", models.DefaultPresencePenalty, "presence penalty")
	flags.Bool("tls-skip-verify", false, "skip TLS certificate verification (insecure)")
	flags.String("language", "english", "language of the welcome message")
	flags.Bool("compact", false, "one line per message")
	flags.Bool("plain", false, "print replies without styling")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("quiet", false, "print only the reply (with --prompt)")
	flags.String("hooks", "", "additional hooks file")
	flags.Bool("no-hooks", false, "disable all hooks")

	rootCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "ask a single question and exit")

	for _, name := range []string{
		"model", "provider-api-key", "provider-url", "temperature", "max-tokens",
		"frequency-penalty", "presence-penalty", "tls-skip-verify", "language",
		"compact", "plain", "debug", "quiet", "hooks", "no-hooks",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
}

// loadConfig resolves settings from flags, ISLAMICAI_* variables and the
// config file, in that order of precedence.
func loadConfig() (*config.Config, error) {
	path, err := config.Init(v, configFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg)
	if path != "" {
		log.Debug("loaded config file", "path", path)
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	switch {
	case cfg.Debug:
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	case cfg.Quiet:
		log.SetLevel(log.ErrorLevel)
		log.SetReportCaller(false)
	default:
		log.SetLevel(log.InfoLevel)
		log.SetReportCaller(false)
	}
}

// newSession creates a chat session. A nil selector detects the language
// of every question.
func newSession(ctx context.Context, cfg *config.Config, selector *language.Selector) (*chat.Session, error) {
	hookConfig, err := loadHooks(cfg)
	if err != nil {
		return nil, err
	}

	sess, err := chat.NewSession(ctx, &chat.Config{
		ModelConfig: cfg.ProviderConfig(),
		Language:    cfg.LanguageTag(),
		Selector:    selector,
		Hooks:       hookConfig,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("model loaded", "provider", sess.Provider(), "model", sess.ModelID())
	return sess, nil
}

// loadHooks reads the default hook files and the one given with --hooks.
func loadHooks(cfg *config.Config) (*hooks.HookConfig, error) {
	if cfg.NoHooks {
		return nil, nil
	}
	paths := hooks.DefaultHookPaths()
	if cfg.Hooks != "" {
		if _, err := os.Stat(cfg.Hooks); err != nil {
			return nil, fmt.Errorf("hooks file: %w", err)
		}
		paths = append(paths, cfg.Hooks)
	}
	hookConfig, err := hooks.LoadHooksConfig(paths...)
	if err != nil {
		return nil, err
	}
	if !hookConfig.Empty() {
		log.Debug("hooks loaded", "paths", paths)
	}
	return hookConfig, nil
}

func runChat(ctx context.Context, out io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := newSession(ctx, cfg, nil)
	if err != nil {
		return err
	}

	if promptFlag != "" {
		return askOnce(ctx, out, cfg, sess, promptFlag)
	}
	if !isTerminal(os.Stdin) {
		// piped input is a single question
		question, err := readInput(os.Stdin, nil)
		if err != nil {
			return err
		}
		return askOnce(ctx, out, cfg, sess, strings.TrimSpace(question))
	}
	return runInteractive(ctx, cfg, sess)
}

// askOnce answers a single question. With --quiet only the formatted reply
// is printed.
func askOnce(ctx context.Context, out io.Writer, cfg *config.Config, sess *chat.Session, question string) error {
	var result *chat.Result
	ask := func() error {
		var err error
		result, err = sess.Submit(ctx, question)
		return err
	}

	if cfg.Quiet {
		if err := ask(); err != nil {
			return err
		}
		fmt.Fprintln(out, renderPlainReply(result.Reply))
		return result.Err
	}

	cli := ui.NewCLIWithWriter(out, ui.TerminalWidth(), cfg.Compact, cfg.Plain)
	cli.SetModelName(sess.ModelID())
	cli.DisplayUserMessage(session.UserMessage(question, sess.Detect(question)))
	if err := cli.ShowSpinner(sess.Thinking(question), ask); err != nil {
		return err
	}
	cli.DisplayAssistantMessage(result.Reply)
	return result.Err
}

func runInteractive(ctx context.Context, cfg *config.Config, sess *chat.Session) error {
	cli := ui.NewCLI(cfg.Compact, cfg.Plain)
	cli.SetModelName(sess.ModelID())
	cli.SetDetector(sess.Detect)
	cli.SetUsageTracker(ui.NewUsageTracker(sess.ModelInfo(), sess.Provider(), 0))

	for _, msg := range sess.Messages() {
		cli.DisplayMessage(msg)
	}

	for {
		input, err := cli.GetPrompt()
		if errors.Is(err, io.EOF) {
			fmt.Println("\n  Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}
		if input == "" {
			continue
		}

		if cli.IsSlashCommand(input) {
			result := cli.HandleSlashCommand(input)
			switch {
			case result.Quit:
				return nil
			case result.ClearHistory:
				sess.Reset()
				for _, msg := range sess.Messages() {
					cli.DisplayMessage(msg)
				}
				continue
			case result.Handled:
				continue
			}
			cli.DisplayError(fmt.Errorf("unknown command: %s", input))
			continue
		}

		cli.DisplayUserMessage(session.UserMessage(input, sess.Detect(input)))

		var result *chat.Result
		err = cli.ShowSpinner(sess.Thinking(input), func() error {
			var err error
			result, err = sess.Submit(ctx, input)
			return err
		})
		if err != nil {
			cli.DisplayError(err)
			continue
		}

		cli.DisplayAssistantMessage(result.Reply)
		if result.Err == nil {
			cli.RecordUsage(result.Usage)
			cli.DisplayUsageAfterResponse()
		}
	}
}
