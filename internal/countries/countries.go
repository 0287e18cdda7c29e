// Package countries provides locale-aware country name tables keyed by
// ISO-3166 country code.
package countries

import (
	"bufio"
	"sort"
	"strings"
)

// Table maps a country code to its localized name.
// A table is read-only once it has been handed to a Registry.
type Table map[string]string

// Codes returns the table's country codes in ascending order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t))
	for code := range t {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of countries in the table.
func (t Table) Len() int {
	return len(t)
}

// ParseText parses the line format "CODE,Name".
// Blank lines and lines starting with '#' are skipped, as are lines
// without a comma. Codes are upper-cased.
func ParseText(content string) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(parts[0]))
		name := strings.TrimSpace(parts[1])
		if code == "" {
			continue
		}
		table[code] = name
	}
	return table, scanner.Err()
}

// ParseCodes reads one code per line, skipping blanks and '#' comments.
// Codes are returned as written, trimmed, in input order.
func ParseCodes(content string) ([]string, error) {
	var result []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}
	return result, scanner.Err()
}
