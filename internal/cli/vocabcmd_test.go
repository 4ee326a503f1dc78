package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offerlens/offerql/internal/vocab"
)

func TestVocabText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewVocabCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	for _, table := range vocab.Tables() {
		assert.Contains(t, out, table.SQL()+":")
	}
	assert.Contains(t, out, "comparison:")
	assert.Contains(t, out, "arithmetic:")
	assert.Contains(t, out, "aggregates:")
	assert.Contains(t, out, "windows:")
	assert.Contains(t, out, "percentile_cont")
}

func TestVocabJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewVocabCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result VocabResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Len(t, result.Tables, len(vocab.Tables()))
	assert.Len(t, result.Comparison, len(vocab.CompareOps()))
	assert.Len(t, result.Arithmetic, len(vocab.ArithOps()))
	assert.Len(t, result.Aggregates, len(vocab.AggFuncs()))
	assert.Len(t, result.Windows, len(vocab.WindowFuncs()))
	assert.Contains(t, result.Tables["product_offers"], "markdown_price")
}
