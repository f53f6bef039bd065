// Package cli implements the answerkey command line tool: offline
// feature extraction and answer comparison, plus database migration
// management. The offline commands run the same scoring pipeline as
// the API server without touching any backing service.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/internal/config"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/lexicon"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/similarity"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/textproc"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds the global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LexiconPath  string
	OutputFormat string
	Verbose      bool
}

// NewRootCommand builds the answerkey root command with every
// subcommand mounted.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "answerkey",
		Short:   "AnswerKey-Intelligence CLI for answer similarity analysis",
		Long:    "answerkey evaluates free-text exam answers against reference (topper)\nanswers: extracts domain features, scores similarity, and synthesizes\nfeedback. Offline commands need no server; migrate manages the schema.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: env-only configuration)")
	pf.StringVar(&opts.LexiconPath, "lexicon", "", "JSON lexicon file overriding the built-in sociology catalogue")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newFeaturesCmd(opts),
		newIngestCmd(opts),
		newMigrateCmd(opts),
	)

	return cmd
}

// Execute runs the CLI and reports failure on stderr.
func Execute() error {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads configuration from the --config file when given,
// otherwise from ANSKEY_* environment variables alone.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	return config.LoadFromEnv()
}

// newLogger builds a stderr console logger so command output on stdout
// stays machine-readable.
func newLogger(opts *RootOptions) (logging.Logger, error) {
	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// newOfflineService wires a service backed only by the lexicon and
// scorer. Persistence-dependent operations are not reachable from the
// offline commands.
func newOfflineService(opts *RootOptions) (analysis.Service, error) {
	lex, err := resolveLexicon(opts)
	if err != nil {
		return nil, err
	}

	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(opts)
	if err != nil {
		return nil, err
	}

	return analysis.NewService(analysis.Deps{
		Lexicon: lex,
		Scorer:  similarity.NewScorer(normalizer),
		Logger:  logger,
	}), nil
}

func resolveLexicon(opts *RootOptions) (*lexicon.DomainLexicon, error) {
	if opts.LexiconPath != "" {
		return lexicon.LoadFile(opts.LexiconPath)
	}
	return lexicon.NewSociologyLexicon(), nil
}

// printResult writes data to the command's stdout in the configured
// format. Text mode falls back to indented JSON for structured values.
func printResult(cmd *cobra.Command, opts *RootOptions, data interface{}) error {
	switch strings.ToLower(opts.OutputFormat) {
	case "json":
		return printJSON(cmd, data)
	default:
		if s, ok := data.(string); ok {
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}
		return printJSON(cmd, data)
	}
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// readTextArg resolves the text/file flag pair used by several commands.
func readTextArg(text, file string) (string, error) {
	switch {
	case text != "" && file != "":
		return "", fmt.Errorf("--text and --file are mutually exclusive")
	case text != "":
		return text, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("one of --text or --file is required")
	}
}
