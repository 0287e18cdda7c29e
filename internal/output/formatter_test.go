package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hightemp/ccnames/internal/countries"
)

func TestLookupResultFormatText(t *testing.T) {
	result := &LookupResult{
		Code:   "RU",
		Locale: "ru",
		Name:   "Россия",
		Exists: true,
	}

	parts := strings.Split(result.FormatText(), "\t")
	require.Len(t, parts, 3)
	assert.Equal(t, "RU", parts[0])
	assert.Equal(t, "ru", parts[1])
	assert.Equal(t, "Россия", parts[2])
}

func TestLookupResultFormatTextError(t *testing.T) {
	result := &LookupResult{
		Code:  "ZZ",
		Error: "unknown country code",
	}

	text := result.FormatText()
	assert.True(t, strings.HasPrefix(text, "ZZ\t"))
	assert.Contains(t, text, "ERROR: unknown country code")
}

func TestLookupResultFormatJSON(t *testing.T) {
	result := &LookupResult{
		Code:   "FR",
		Locale: "en",
		Name:   "France",
		Exists: true,
	}

	jsonStr, err := result.FormatJSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &parsed))
	assert.Equal(t, "FR", parsed["code"])
	assert.Equal(t, "en", parsed["locale"])
	assert.Equal(t, "France", parsed["name"])
	assert.Equal(t, true, parsed["exists"])
	assert.NotContains(t, parsed, "error")
}

func TestBatchResultFormatText(t *testing.T) {
	batch := &BatchResult{
		Results: []*LookupResult{
			{Code: "RU", Locale: "en", Name: "Russia", Exists: true},
			{Code: "ZZ", Error: "unknown country code"},
		},
	}

	lines := strings.Split(batch.FormatText(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "RU\ten\tRussia", lines[0])
	assert.Contains(t, lines[1], "ERROR:")
}

func TestBatchResultFormatJSON(t *testing.T) {
	batch := &BatchResult{
		Results: []*LookupResult{
			{Code: "RU", Locale: "en", Name: "Russia", Exists: true},
		},
	}

	jsonStr, err := batch.FormatJSON()
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &parsed))
	assert.Len(t, parsed, 1)

	empty, err := (&BatchResult{}).FormatJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestFormatExistsText(t *testing.T) {
	text := FormatExistsText([]ExistsResult{
		{Code: "RU", Exists: true},
		{Code: "ZZ", Exists: false},
	})

	assert.Equal(t, "RU\ttrue\nZZ\tfalse", text)
}

func TestTableResult(t *testing.T) {
	result := NewTableResult("ro", countries.Table{"RU": "Rusia", "FR": "Franța"})

	assert.Equal(t, "ro", result.Locale)
	assert.Equal(t, []Entry{{"FR", "Franța"}, {"RU", "Rusia"}}, result.Entries)
	assert.Equal(t, "FR\tFranța\nRU\tRusia", result.FormatText())

	jsonStr, err := result.FormatJSON()
	require.NoError(t, err)

	var parsed TableResult
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &parsed))
	assert.Equal(t, *result, parsed)
}

func TestLocalesResultFormatText(t *testing.T) {
	result := &LocalesResult{Fallback: "en", Loaded: []string{"en", "ru"}}
	assert.Equal(t, "fallback\ten\nloaded\ten,ru", result.FormatText())

	result.Available = []string{"de", "en", "ru"}
	assert.Equal(t, "fallback\ten\nloaded\ten,ru\navailable\tde,en,ru", result.FormatText())
}
