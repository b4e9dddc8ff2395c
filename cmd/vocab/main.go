package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mdanassaif/bigNweirdwords/internal/app"
	"github.com/mdanassaif/bigNweirdwords/internal/config"
	"github.com/mdanassaif/bigNweirdwords/internal/logger"
	"github.com/mdanassaif/bigNweirdwords/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type options struct {
	configPath    string
	minWordLength int
	url           string
	selector      string
	pretty        bool
	quiet         bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "vocab [file]",
		Short: "Look up definitions of the long words in a text",
		Long: `vocab extracts the distinct words of at least --min-length characters
from a file, standard input, or a web article (--url) and prints the
definitions of the first ten of them as JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "path to the YAML configuration")
	cmd.Flags().IntVarP(&opts.minWordLength, "min-length", "n", 7, "minimum word length")
	cmd.Flags().StringVar(&opts.url, "url", "", "read the text from a web article instead of a file")
	cmd.Flags().StringVar(&opts.selector, "selector", "", "CSS selector of the article content (with --url)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", true, "indent the JSON output")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

func run(parent context.Context, opts options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// Load .env file if exists
	_ = godotenv.Load()

	if parent == nil {
		parent = context.Background()
	}
	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	text, err := readText(ctx, application, opts, args, stdin)
	if err != nil {
		return err
	}

	if !opts.quiet {
		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Looking up definitions..."),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		application.OnLookup(func(string, bool) {
			_ = bar.Add(1)
		})
		defer func() {
			_ = bar.Finish()
			fmt.Fprintln(stderr)
		}()
	}

	result, err := application.Run(ctx, models.LookupRequest{
		Text:          text,
		MinWordLength: opts.minWordLength,
	})
	if err != nil {
		return fmt.Errorf("failed to process vocabulary: %w", err)
	}

	// Output results as JSON
	encoder := json.NewEncoder(stdout)
	encoder.SetEscapeHTML(false)
	if opts.pretty {
		encoder.SetIndent("", "    ")
	}
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return nil
}

// readText returns the text to analyse from --url, a file argument, or
// standard input ("-" or no argument).
func readText(ctx context.Context, a *app.App, opts options, args []string, stdin io.Reader) (string, error) {
	if opts.url != "" {
		content, err := a.Fetcher().Fetch(ctx, opts.url)
		if err != nil {
			return "", fmt.Errorf("failed to fetch article: %w", err)
		}
		text, err := a.Parser().ExtractText(content, opts.selector)
		if err != nil {
			return "", fmt.Errorf("failed to parse article: %w", err)
		}
		return text, nil
	}

	var r io.Reader = stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("error opening text file: %w", err)
		}
		defer f.Close()
		r = f
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("error reading text: %w", err)
	}
	return string(content), nil
}
