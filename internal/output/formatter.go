// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/ccnames/internal/countries"
)

// LookupResult contains the result of a country code lookup.
type LookupResult struct {
	Code   string `json:"code"`
	Locale string `json:"locale"`
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// FormatText formats result as tab-separated text.
func (r *LookupResult) FormatText() string {
	if r.Error != "" {
		return fmt.Sprintf("%s\t-\t-\tERROR: %s", r.Code, r.Error)
	}

	return fmt.Sprintf("%s\t%s\t%s", r.Code, r.Locale, r.Name)
}

// FormatJSON formats result as JSON.
func (r *LookupResult) FormatJSON() (string, error) {
	return formatJSON(r)
}

// BatchResult contains results for batch processing.
type BatchResult struct {
	Results []*LookupResult
}

// FormatText formats batch results as text (one line per result).
func (b *BatchResult) FormatText() string {
	var lines []string
	for _, r := range b.Results {
		lines = append(lines, r.FormatText())
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats batch results as JSON array.
func (b *BatchResult) FormatJSON() (string, error) {
	results := b.Results
	if results == nil {
		results = []*LookupResult{}
	}
	return formatJSON(results)
}

// ExistsResult reports whether a code is a known country.
type ExistsResult struct {
	Code   string `json:"code"`
	Exists bool   `json:"exists"`
}

// FormatExistsText formats existence checks, one "CODE\ttrue|false" line each.
func FormatExistsText(results []ExistsResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%s\t%t", r.Code, r.Exists))
	}
	return strings.Join(lines, "\n")
}

// FormatExistsJSON formats existence checks as a JSON array.
func FormatExistsJSON(results []ExistsResult) (string, error) {
	if results == nil {
		results = []ExistsResult{}
	}
	return formatJSON(results)
}

// Entry is one row of a country table.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// TableResult is a country table resolved for a locale.
type TableResult struct {
	Locale  string  `json:"locale"`
	Entries []Entry `json:"countries"`
}

// NewTableResult builds a result from table with entries sorted by code.
func NewTableResult(locale string, table countries.Table) *TableResult {
	entries := make([]Entry, 0, table.Len())
	for _, code := range table.Codes() {
		entries = append(entries, Entry{Code: code, Name: table[code]})
	}
	return &TableResult{Locale: locale, Entries: entries}
}

// FormatText formats the table as "CODE\tName" lines.
func (t *TableResult) FormatText() string {
	lines := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		lines = append(lines, e.Code+"\t"+e.Name)
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats the table as JSON.
func (t *TableResult) FormatJSON() (string, error) {
	return formatJSON(t)
}

// LocalesResult lists loaded and available locales.
type LocalesResult struct {
	Fallback  string   `json:"fallback"`
	Loaded    []string `json:"loaded"`
	Available []string `json:"available,omitempty"`
}

// FormatText formats the locale listing.
func (l *LocalesResult) FormatText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fallback\t%s\n", l.Fallback)
	fmt.Fprintf(&sb, "loaded\t%s", strings.Join(l.Loaded, ","))
	if l.Available != nil {
		fmt.Fprintf(&sb, "\navailable\t%s", strings.Join(l.Available, ","))
	}
	return sb.String()
}

// FormatJSON formats the locale listing as JSON.
func (l *LocalesResult) FormatJSON() (string, error) {
	return formatJSON(l)
}

func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
