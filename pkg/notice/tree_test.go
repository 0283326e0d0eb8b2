package notice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/antchfx/xpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotice = `<?xml version="1.0" encoding="UTF-8"?>
<NOTICE>
  <WORK>
    <RESOURCE_LEGAL_ID_CELEX><VALUE> 32016R0679 </VALUE></RESOURCE_LEGAL_ID_CELEX>
    <MIXED>lead<CHILD>inner</CHILD>tail</MIXED>
  </WORK>
  <EXPRESSION>
    <EXPRESSION_TITLE xml:lang="en"><VALUE>General Data Protection Regulation</VALUE></EXPRESSION_TITLE>
  </EXPRESSION>
</NOTICE>`

func TestParse(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	assert.Equal(t, "NOTICE", tree.Root().Data)
	assert.Equal(t, "", tree.Source())

	nodes, err := tree.Query("//RESOURCE_LEGAL_ID_CELEX/VALUE")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, " 32016R0679 ", DirectText(nodes[0]))
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace_only", "   \n\t"},
		{"unclosed_element", "<NOTICE><WORK></NOTICE>"},
		{"truncated", "<NOTICE><WORK>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Parse([]byte(tc.input))
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)

			var parseError *ParseError
			assert.True(t, errors.As(err, &parseError))
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(sampleNotice), 0644))

	tree, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tree.Source())
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformed), "read failures are not parse errors")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFile_MalformedCarriesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("<NOTICE>"), 0644))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestDirectText(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	mixed, err := tree.Query("//MIXED")
	require.NoError(t, err)
	require.Len(t, mixed, 1)
	assert.Equal(t, "lead", DirectText(mixed[0]))

	texts, err := tree.Query("//RESOURCE_LEGAL_ID_CELEX/VALUE/text()")
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Equal(t, " 32016R0679 ", DirectText(texts[0]))

	assert.Equal(t, "", DirectText(nil))
}

func TestAttributeValue(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	titles, err := tree.Query("//EXPRESSION_TITLE")
	require.NoError(t, err)
	require.Len(t, titles, 1)

	value, ok := AttributeValue(titles[0], "lang")
	assert.True(t, ok)
	assert.Equal(t, "en", value)

	_, ok = AttributeValue(titles[0], "missing")
	assert.False(t, ok)
}

func TestAttributeValues(t *testing.T) {
	tree, err := Parse([]byte(`<NOTICE><VALUE xml:lang="en" lang="fra" type="data"/></NOTICE>`))
	require.NoError(t, err)

	values, err := tree.Query("//VALUE")
	require.NoError(t, err)
	require.Len(t, values, 1)

	assert.Equal(t, []string{"en", "fra"}, AttributeValues(values[0], "lang"))
	assert.Empty(t, AttributeValues(values[0], "missing"))
	assert.Nil(t, AttributeValues(nil, "lang"))
}

func TestSelectFrom_RelativeAndAbsolute(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	works, err := tree.Query("//WORK")
	require.NoError(t, err)
	require.Len(t, works, 1)

	relative := xpath.MustCompile(".//EXPRESSION_TITLE")
	assert.Empty(t, SelectFrom(works[0], relative), "relative search stays beneath the work")

	absolute := xpath.MustCompile("//EXPRESSION_TITLE")
	assert.Empty(t, SelectFrom(works[0], absolute), "the context node is the navigation root")
	assert.Len(t, SelectFrom(DocumentOf(works[0]), absolute), 1)

	assert.Nil(t, SelectFrom(nil, absolute))
}

func TestDocumentOf(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	values, err := tree.Query("//EXPRESSION_TITLE/VALUE")
	require.NoError(t, err)
	require.Len(t, values, 1)

	assert.Same(t, tree.Document(), DocumentOf(values[0]))
	assert.Same(t, tree.Document(), DocumentOf(tree.Document()))
	assert.Nil(t, DocumentOf(nil))
}

func TestQuery_InvalidExpression(t *testing.T) {
	tree, err := Parse([]byte(sampleNotice))
	require.NoError(t, err)

	_, err = tree.Query("//WORK[")
	assert.Error(t, err)
}
