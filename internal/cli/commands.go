package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hightemp/ccnames/internal/countries"
	"github.com/hightemp/ccnames/internal/output"
)

func newExistsCmd(opts *options) *cobra.Command {
	var codesFile string

	cmd := &cobra.Command{
		Use:   "exists [code...]",
		Short: "Check whether codes are known country codes",
		Long: `Checks each code against the fallback locale's table and prints
"CODE<TAB>true|false". Exits with code 4 if any code is unknown.

Examples:
  ccnames exists RU FR ZZ
  ccnames exists --codes-file codes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := args
			if codesFile != "" {
				content, err := os.ReadFile(codesFile)
				if err != nil {
					return exitWithCode(ExitInvalidInput, fmt.Sprintf("Error: read codes file: %v", err))
				}
				fileCodes, err := countries.ParseCodes(string(content))
				if err != nil {
					return exitWithCode(ExitInvalidInput, fmt.Sprintf("Error: parse codes file: %v", err))
				}
				codes = append(codes, fileCodes...)
			}
			if len(codes) == 0 {
				return exitWithCode(ExitInvalidInput, "Error: no country codes given")
			}

			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			results := make([]output.ExistsResult, 0, len(codes))
			missing := 0
			for _, code := range codes {
				ok := s.registry.Exists(code)
				if !ok {
					missing++
				}
				results = append(results, output.ExistsResult{Code: code, Exists: ok})
			}

			w := cmd.OutOrStdout()
			if s.cfg.JSONOutput {
				jsonStr, err := output.FormatExistsJSON(results)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, jsonStr)
			} else {
				fmt.Fprintln(w, output.FormatExistsText(results))
			}

			if missing > 0 {
				return exitWithCode(ExitNotFound, fmt.Sprintf("%d of %d codes not found", missing, len(codes)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&codesFile, "codes-file", "", "file with country codes (one per line)")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the country table for a locale",
		Long: `Prints every code and name of the locale's table, sorted by code.
A locale without a dataset prints the fallback locale's table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			loc := s.displayLocale(locale)
			s.registry.LoadOne(loc)
			result := output.NewTableResult(loc, s.registry.Table(loc))
			if !s.registry.IsLoaded(loc) {
				result.Locale = s.registry.FallbackLocale()
			}

			w := cmd.OutOrStdout()
			if s.cfg.JSONOutput {
				jsonStr, err := result.FormatJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(w, jsonStr)
				return nil
			}
			fmt.Fprintln(w, result.FormatText())
			return nil
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale to list (default: fallback locale)")
	return cmd
}

func newLocalesCmd(opts *options) *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Show loaded and available locales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}

			result := &output.LocalesResult{
				Fallback: s.registry.FallbackLocale(),
				Loaded:   s.registry.Loaded(),
			}
			if available {
				locales, err := availableLocales(s)
				if err != nil {
					return err
				}
				result.Available = locales
			}

			w := cmd.OutOrStdout()
			if s.cfg.JSONOutput {
				jsonStr, err := result.FormatJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(w, jsonStr)
				return nil
			}
			fmt.Fprintln(w, result.FormatText())
			return nil
		},
	}

	cmd.Flags().BoolVar(&available, "available", false, "also list locales with a dataset")
	return cmd
}

// availableLocales merges the embedded locales with the data directory's.
func availableLocales(s *session) ([]string, error) {
	locales, err := countries.Embedded().Locales()
	if err != nil {
		return nil, err
	}
	if s.source == nil {
		return locales, nil
	}

	extra, err := s.source.Locales()
	if err != nil {
		s.logger.Warn("cannot list data directory", "error", err)
		return locales, nil
	}
	return mergeSorted(locales, extra), nil
}

func mergeSorted(a, b []string) []string {
	merged := append(slices.Clone(a), b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}
