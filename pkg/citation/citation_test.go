package citation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int {
	return &value
}

func TestParseArticleReference(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		wantType   ReferenceType
		wantParsed string
		wantComps  Components
	}{
		{
			name:       "compact_article_paragraph",
			raw:        "A58P5",
			wantType:   ReferenceTypeSimple,
			wantParsed: "Article 58, Paragraph 5",
			wantComps:  Components{Article: intPtr(58), Paragraph: intPtr(5)},
		},
		{
			name:       "compact_article_only",
			raw:        "A6",
			wantType:   ReferenceTypeSimple,
			wantParsed: "Article 6",
			wantComps:  Components{Article: intPtr(6)},
		},
		{
			name:       "placeholder",
			raw:        "Not specified",
			wantType:   ReferenceTypeNone,
			wantParsed: "Not specified",
		},
		{
			name:       "empty",
			raw:        "",
			wantType:   ReferenceTypeNone,
			wantParsed: "Not specified",
		},
		{
			name:       "free_text_numeral",
			raw:        "see clause 42 below",
			wantType:   ReferenceTypeInferred,
			wantParsed: "Article 42 (inferred)",
			wantComps:  Components{Article: intPtr(42)},
		},
		{
			name:       "structured_full",
			raw:        "{AR|http://publications.europa.eu/resource/authority/subdivision/ART} 7 {PA|http://publications.europa.eu/resource/authority/subdivision/PAR} 1 {PTA|http://publications.europa.eu/resource/authority/subdivision/PNT} (c)",
			wantType:   ReferenceTypeURIStructured,
			wantParsed: "Article 7, Paragraph 1, Point (c)",
			wantComps:  Components{Article: intPtr(7), Paragraph: intPtr(1), Point: "c"},
		},
		{
			name:       "structured_article_only_embedded",
			raw:        "interpretation of {AR|art} 267 TFEU",
			wantType:   ReferenceTypeURIStructured,
			wantParsed: "Article 267",
			wantComps:  Components{Article: intPtr(267)},
		},
		{
			name:       "structured_point_without_paragraph",
			raw:        "{AR|a}12{PTA|p}(b)",
			wantType:   ReferenceTypeURIStructured,
			wantParsed: "Article 12, Point (b)",
			wantComps:  Components{Article: intPtr(12), Point: "b"},
		},
		{
			name:       "compact_with_trailing_text_is_original",
			raw:        "A58P5 and more",
			wantType:   ReferenceTypeOriginal,
			wantParsed: "A58P5 and more",
		},
		{
			name:       "inferred_picks_year",
			raw:        "judgment of 2019, article 5",
			wantType:   ReferenceTypeInferred,
			wantParsed: "Article 2019 (inferred)",
			wantComps:  Components{Article: intPtr(2019)},
		},
		{
			name:       "no_numeral",
			raw:        "Annex",
			wantType:   ReferenceTypeOriginal,
			wantParsed: "Annex",
		},
		{
			name:       "compact_overflowing_numeral_keeps_digits",
			raw:        "A99999999999999999999999",
			wantType:   ReferenceTypeSimple,
			wantParsed: "Article 99999999999999999999999",
		},
		{
			name:       "compact_leading_zeros_kept_in_label",
			raw:        "A05P01",
			wantType:   ReferenceTypeSimple,
			wantParsed: "Article 05, Paragraph 01",
			wantComps:  Components{Article: intPtr(5), Paragraph: intPtr(1)},
		},
		{
			name:       "inferred_overflowing_numeral",
			raw:        "Article 99999999999999999999 and 3",
			wantType:   ReferenceTypeInferred,
			wantParsed: "Article 99999999999999999999 (inferred)",
		},
		{
			name:       "whitespace_only_is_original",
			raw:        "   ",
			wantType:   ReferenceTypeOriginal,
			wantParsed: "   ",
		},
		{
			name:       "padded_placeholder_is_original",
			raw:        " Not specified ",
			wantType:   ReferenceTypeOriginal,
			wantParsed: " Not specified ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reference := ParseArticleReference(tc.raw)
			assert.Equal(t, tc.raw, reference.Raw)
			assert.Equal(t, tc.wantType, reference.Type)
			assert.Equal(t, tc.wantParsed, reference.Parsed)
			assert.Equal(t, tc.wantComps, reference.Components)
		})
	}
}

func TestParseArticleReference_Deterministic(t *testing.T) {
	inputs := []string{"A58P5", "", "see clause 42 below", "{AR|x} 3", "Annex II"}
	for _, input := range inputs {
		assert.Equal(t, ParseArticleReference(input), ParseArticleReference(input), input)
	}
}

func TestTiers_Independent(t *testing.T) {
	_, ok := placeholderTier("A1")
	assert.False(t, ok)

	_, ok = placeholderTier(" " + NotSpecified)
	assert.False(t, ok, "placeholder must match exactly")

	_, ok = structuredTier("A58P5")
	assert.False(t, ok, "compact notation is not structured")

	reference, ok := compactTier("A58P5")
	require.True(t, ok)
	assert.Equal(t, ReferenceTypeSimple, reference.Type)

	_, ok = compactTier("{AR|x} 5")
	assert.False(t, ok)

	_, ok = inferredTier("no digits")
	assert.False(t, ok)
}

func TestParseArticleReferences(t *testing.T) {
	references := ParseArticleReferences(nil)
	require.Len(t, references, 1)
	assert.Equal(t, ReferenceTypeNone, references[0].Type)
	assert.False(t, references[0].IsReal())

	references = ParseArticleReferences([]string{"A1", "A2P3", "  "})
	require.Len(t, references, 3)
	assert.True(t, references[0].IsReal())
	assert.True(t, references[2].IsReal(), "whitespace is kept as an original mention")
	assert.Equal(t, "Article 2, Paragraph 3", references[1].Parsed)
}

func TestArticleReferenceJSON(t *testing.T) {
	data, err := json.Marshal(ParseArticleReference("A58P5"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"raw":"A58P5","parsed":"Article 58, Paragraph 5","type":"simple","components":{"article":58,"paragraph":5}}`,
		string(data))

	data, err = json.Marshal(ParseArticleReference("Annex"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw":"Annex","parsed":"Annex","type":"original","components":{}}`, string(data))
}
