package citation

import (
	"strings"
	"testing"
)

// FuzzParseArticleReference tests the article reference tiers with arbitrary input.
// Run with: go test -fuzz=FuzzParseArticleReference -fuzztime=30s ./pkg/citation/...
func FuzzParseArticleReference(f *testing.F) {
	seeds := []string{
		// Structured
		"{AR|http://publications.europa.eu/resource/authority/article/58} 58 {PA|http://x/pa} 5",
		"{AR|uri} 6 {PA|uri} 1 {PTA|uri} (a)",
		"{AR|uri} 17",

		// Compact
		"A58P5",
		"A1",
		"A0P0",

		// Free text
		"see article 42",
		"Articles 12 and 14",
		"N1",

		// Edge cases
		"",
		"   ",
		NotSpecified,
		"{AR|",
		"{AR|uri} {PA|uri} 5",
		"A99999999999999999999999",
		strings.Repeat("A1 ", 1000),
		"Article 1 — Subject-matter",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data string) {
		reference := ParseArticleReference(data)

		if reference.Raw != data {
			t.Errorf("Raw = %q, want %q", reference.Raw, data)
		}
		switch reference.Type {
		case ReferenceTypeNone, ReferenceTypeURIStructured, ReferenceTypeSimple,
			ReferenceTypeInferred, ReferenceTypeOriginal:
		default:
			t.Errorf("unknown type %q", reference.Type)
		}
		if reference.Parsed == "" && strings.TrimSpace(data) != "" {
			t.Error("Parsed is empty for non-empty input")
		}
		if (data == "" || data == NotSpecified) != (reference.Type == ReferenceTypeNone) {
			t.Errorf("placeholder classification wrong for %q: %s", data, reference.Type)
		}
		if reference.IsReal() && reference.Type != ReferenceTypeOriginal && !strings.HasPrefix(reference.Parsed, "Article ") {
			t.Errorf("%s reference with label %q", reference.Type, reference.Parsed)
		}
	})
}
