package countries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCodes(t *testing.T) {
	table := Table{"RU": "Russia", "FR": "France", "AU": "Australia"}

	assert.Equal(t, []string{"AU", "FR", "RU"}, table.Codes())
	assert.Equal(t, 3, table.Len())
	assert.Empty(t, Table{}.Codes())
}

func TestParseText(t *testing.T) {
	content := `# code,name
ru,Russia
FR , France

invalid line
CN,China, People's Republic of
,Nowhere
`
	table, err := ParseText(content)
	require.NoError(t, err)

	assert.Equal(t, Table{
		"RU": "Russia",
		"FR": "France",
		"CN": "China, People's Republic of",
	}, table)
}

func TestParseTextEmpty(t *testing.T) {
	table, err := ParseText("")
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
}

func TestParseCodes(t *testing.T) {
	content := `# Comment line
US
 GB

de
`
	codes, err := ParseCodes(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"US", "GB", "de"}, codes)
}

func TestParseCodesEmpty(t *testing.T) {
	codes, err := ParseCodes("")
	require.NoError(t, err)
	assert.Empty(t, codes)
}
