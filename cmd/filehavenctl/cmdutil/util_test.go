package cmdutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filehaven/filehaven/internal/cli/output"
)

func TestBoolToYesNo(t *testing.T) {
	assert.Equal(t, "yes", BoolToYesNo(true))
	assert.Equal(t, "no", BoolToYesNo(false))
}

func TestEmptyOr(t *testing.T) {
	assert.Equal(t, "value", EmptyOr("value", "-"))
	assert.Equal(t, "-", EmptyOr("", "-"))
}

func TestParseCommaSeparatedList(t *testing.T) {
	assert.Nil(t, ParseCommaSeparatedList(""))
	assert.Equal(t, []string{"a", "b", "c"}, ParseCommaSeparatedList("a,b,c"))
	assert.Equal(t, []string{"a", "b"}, ParseCommaSeparatedList(" a , b , "))
}

func TestPrintOutputJSON(t *testing.T) {
	Flags.Output = "json"
	defer func() { Flags.Output = "table" }()

	var buf bytes.Buffer
	err := PrintOutput(&buf, map[string]string{"key": "value"}, false, "", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

func TestPrintOutputTableEmpty(t *testing.T) {
	Flags.Output = "table"

	var buf bytes.Buffer
	err := PrintOutput(&buf, nil, true, "Nothing here.", nil)
	require.NoError(t, err)
	assert.Equal(t, "Nothing here.\n", buf.String())
}

func TestPrintOutputTable(t *testing.T) {
	Flags.Output = "table"

	table := output.NewTableData("NAME", "VALUE")
	table.AddRow("alpha", "1")

	var buf bytes.Buffer
	err := PrintOutput(&buf, nil, false, "", table)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "alpha")
}

func TestPrintOutputInvalidFormat(t *testing.T) {
	Flags.Output = "xml"
	defer func() { Flags.Output = "table" }()

	var buf bytes.Buffer
	err := PrintOutput(&buf, nil, false, "", nil)
	assert.Error(t, err)
}
