// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/hightemp/ccnames/internal/config"
	"github.com/hightemp/ccnames/internal/countries"
	"github.com/hightemp/ccnames/internal/logging"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// ExitCode constants
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitNoData       = 3
	ExitNotFound     = 4
)

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	return e.Msg
}

func exitWithCode(code int, msg string) error {
	return &ExitError{Code: code, Msg: msg}
}

// options holds the global flags.
type options struct {
	configPath  string
	dataDir     string
	fallback    string
	preload     []string
	logLevel    string
	noColor     bool
	jsonOutput  bool
	locale      string
	concurrency int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ccnames [code]",
		Short: "Country names by ISO-3166 code, in many locales",
		Long: `ccnames looks up localized country names by ISO-3166 alpha-2 code.

For a single code:
  ccnames RU --locale ru

For batch processing (read from stdin):
  cat codes.txt | ccnames --locale de

Names come from per-locale datasets compiled into the binary; a data
directory with <locale>.json, .yaml or .txt files overrides or extends them.
A locale without a dataset uses the fallback locale's table; a code missing
from a loaded locale has an empty name.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, opts, args)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory with additional <locale> datasets")
	flags.StringVar(&opts.fallback, "fallback", "", "fallback locale (default \"en\")")
	flags.StringSliceVar(&opts.preload, "preload", nil, "locales to load at startup (default [en])")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored log output")
	flags.BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")

	// Lookup-specific flags
	rootCmd.Flags().StringVarP(&opts.locale, "locale", "l", "", "display locale (default: fallback locale)")
	rootCmd.Flags().IntVar(&opts.concurrency, "concurrency", 1, fmt.Sprintf("parallel batch lookups (1 streams output, max %d)", config.MaxBatchConcurrency))

	// Add subcommands
	rootCmd.AddCommand(newExistsCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newLocalesCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command and exits with its exit code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(cmd *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintln(stderr, err)
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	return ExitFailure
}

// session is the configured state shared by commands.
type session struct {
	cfg      *config.Config
	source   *countries.FSSource
	registry *countries.Registry
	logger   *slog.Logger
}

// newSession loads configuration, applies flag overrides and configures a
// registry.
func newSession(cmd *cobra.Command, opts *options) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, exitWithCode(ExitInvalidInput, fmt.Sprintf("Error: %v", err))
	}

	flags := cmd.Flags()
	if flags.Changed("fallback") {
		cfg.FallbackLocale = opts.fallback
	}
	if flags.Changed("preload") {
		cfg.Locales = opts.preload
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = opts.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if flags.Changed("json") {
		cfg.JSONOutput = opts.jsonOutput
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, exitWithCode(ExitInvalidInput, err.Error())
	}
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.NoColor)

	s := &session{cfg: cfg, logger: logger}

	var src countries.Source = countries.Embedded()
	if dir := dataDir(cfg); dir != "" {
		s.source = countries.NewFSSource(os.DirFS(dir), ".")
		src = countries.Chain(s.source, countries.Embedded())
		logger.Debug("using data directory", "dir", dir)
	}

	s.registry = countries.New(src, countries.WithLogger(logger))
	s.registry.Configure(cfg.RegistryOptions())

	if !s.registry.IsLoaded(s.registry.FallbackLocale()) {
		return nil, exitWithCode(ExitNoData, fmt.Sprintf("Error: no dataset for fallback locale %q", s.registry.FallbackLocale()))
	}

	return s, nil
}

// dataDir returns the configured data directory, or the default one if it
// exists.
func dataDir(cfg *config.Config) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	dir := config.DefaultDataDir()
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return ""
}

// displayLocale returns locale in canonical BCP 47 form, or the fallback
// locale when empty.
func (s *session) displayLocale(locale string) string {
	if locale == "" {
		return s.registry.FallbackLocale()
	}
	return normalizeLocale(locale)
}

// normalizeLocale fixes the case and separators of a language tag, so "DE"
// and "pt_br" name the "de" and "pt-BR" datasets. Other names pass through.
func normalizeLocale(locale string) string {
	tag, err := language.Raw.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", config.AppName, Version, Commit, BuildTime)
		},
	}
}
