package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hightemp/ccnames/internal/batch"
	"github.com/hightemp/ccnames/internal/config"
)

func runLookup(cmd *cobra.Command, opts *options, args []string) error {
	// Check if we have a code argument or should read from stdin
	if len(args) == 0 && !isBatchMode(cmd.InOrStdin()) {
		return cmd.Help()
	}

	// Validate concurrency
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}
	if opts.concurrency > config.MaxBatchConcurrency {
		opts.concurrency = config.MaxBatchConcurrency
	}

	s, err := newSession(cmd, opts)
	if err != nil {
		return err
	}

	locale := s.displayLocale(opts.locale)
	s.registry.LoadOne(locale)
	processor := batch.NewProcessor(s.registry, locale, opts.concurrency)

	if len(args) == 1 {
		return lookupSingle(cmd.OutOrStdout(), processor, args[0], s.cfg.JSONOutput)
	}

	// Batch mode from stdin
	if opts.concurrency > 1 {
		return processor.ProcessInputConcurrent(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.cfg.JSONOutput)
	}
	return processor.ProcessInput(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), s.cfg.JSONOutput)
}

func lookupSingle(w io.Writer, processor *batch.Processor, code string, jsonOutput bool) error {
	result := processor.Lookup(code)
	if result.Error != "" {
		return exitWithCode(ExitNotFound, fmt.Sprintf("Country code %s not found", code))
	}

	// Output
	if jsonOutput {
		jsonStr, err := result.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, jsonStr)
	} else {
		fmt.Fprintln(w, result.FormatText())
	}

	return nil
}

// isBatchMode checks if we're receiving piped input
func isBatchMode(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
