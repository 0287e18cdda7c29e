package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(func() {
		Init(nil)
		Reset()
	})
	Reset()

	assert.Same(t, std, Default())
	assert.Empty(t, All())
	assert.Equal(t, "", GetName("US", "en"))

	Init(&Options{Locales: []string{"en", "de", "ru"}})

	assert.True(t, IsLoaded("en"))
	assert.True(t, IsLoaded("de"))
	assert.True(t, IsLoaded("ru"))
	assert.False(t, IsLoaded("fr"))

	tests := []struct {
		code     string
		locale   string
		expected string
	}{
		{"US", "en", "United States"},
		{"us", "en", ""},
		{"DE", "de", "Deutschland"},
		{"DE", "ru", "Германия"},
		{"DE", "fr", "Germany"},
		{"XX", "en", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, GetName(tc.code, tc.locale), "GetName(%q, %q)", tc.code, tc.locale)
	}

	LoadOne("fr")
	assert.Equal(t, "Allemagne", GetName("DE", "fr"))

	LoadAll("es")
	assert.Equal(t, "Alemania", Get("es")["DE"])

	assert.True(t, IsValid("US"))
	assert.False(t, IsValid("XX"))
	assert.GreaterOrEqual(t, len(Get("en").Codes()), 200)
}
