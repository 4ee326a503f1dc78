package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	d, ok := Get("sqlite")
	require.True(t, ok)
	assert.Equal(t, "1", d.BoolTrue)
	assert.Equal(t, "0", d.BoolFalse)

	d, ok = Get("STANDARD")
	require.True(t, ok)
	assert.Equal(t, "TRUE", d.BoolTrue)

	_, ok = Get("oracle")
	assert.False(t, ok)

	assert.Equal(t, []string{"sqlite", "standard"}, List())
}

func TestQuoteString(t *testing.T) {
	d := Default()
	assert.Equal(t, "'Us'", d.QuoteString("Us"))
	assert.Equal(t, "'O''Brien'", d.QuoteString("O'Brien"))
	assert.Equal(t, "''", d.QuoteString(""))
}

func TestQuoteIdent(t *testing.T) {
	plain := &Dialect{Name: "plain"}
	assert.Equal(t, "markdown_price", plain.QuoteIdent("markdown_price"))

	quoted := &Dialect{Name: "quoted", IdentQuote: `"`}
	assert.Equal(t, `"markdown_price"`, quoted.QuoteIdent("markdown_price"))
}

func TestFuncNameOverride(t *testing.T) {
	d := &Dialect{
		Name:      "custom",
		FuncNames: map[string]string{"PERCENTILE_CONT": "APPROX_PERCENTILE"},
	}
	assert.Equal(t, "APPROX_PERCENTILE", d.FuncName("PERCENTILE_CONT"))
	assert.Equal(t, "AVG", d.FuncName("AVG"))
}
