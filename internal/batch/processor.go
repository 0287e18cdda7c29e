// Package batch handles batch country code lookups from stdin.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hightemp/ccnames/internal/countries"
	"github.com/hightemp/ccnames/internal/output"
)

// ErrUnknownCode is the error text for codes missing from the fallback table.
const ErrUnknownCode = "unknown country code"

// Resolver answers country queries. *countries.Registry implements it.
type Resolver interface {
	Exists(code string) bool
	Name(code, locale string) string
}

var _ Resolver = (*countries.Registry)(nil)

// Processor handles batch lookups.
type Processor struct {
	resolver    Resolver
	locale      string
	concurrency int
}

// NewProcessor creates a new batch processor resolving names in locale.
func NewProcessor(resolver Resolver, locale string, concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{
		resolver:    resolver,
		locale:      locale,
		concurrency: concurrency,
	}
}

// Lookup resolves a single code.
func (p *Processor) Lookup(code string) *output.LookupResult {
	result := &output.LookupResult{
		Code:   code,
		Locale: p.locale,
	}

	if !p.resolver.Exists(code) {
		result.Error = ErrUnknownCode
		return result
	}

	result.Exists = true
	result.Name = p.resolver.Name(code, p.locale)
	return result
}

// ProcessInput reads codes from input and writes results to output.
// Text output is streamed line by line; JSON output is one array.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var results []*output.LookupResult

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result := p.Lookup(line)
		if jsonOutput {
			results = append(results, result)
			continue
		}
		if _, err := fmt.Fprintln(w, result.FormatText()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(w, &output.BatchResult{Results: results})
	}
	return nil
}

// ProcessInputConcurrent resolves all codes concurrently and writes results
// in input order.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, jsonOutput bool) error {
	scanner := bufio.NewScanner(r)
	var lines []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	results := make([]*output.LookupResult, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.Lookup(line)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	batch := &output.BatchResult{Results: results}
	if jsonOutput {
		return writeJSON(w, batch)
	}
	if len(results) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, batch.FormatText())
	return err
}

func writeJSON(w io.Writer, batch *output.BatchResult) error {
	jsonStr, err := batch.FormatJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, jsonStr)
	return err
}
