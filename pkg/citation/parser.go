package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// {AR|uri} 58 {PA|uri} 5 {PTA|uri} (a), paragraph and point optional.
	structuredPattern = regexp.MustCompile(`\{AR\|[^}]*\}\s*(\d+)(?:\s*\{PA\|[^}]*\}\s*(\d+))?(?:\s*\{PTA\|[^}]*\}\s*\(([^)]+)\))?`)

	// A58 or A58P5, whole string.
	compactPattern = regexp.MustCompile(`^A(\d+)(?:P(\d+))?$`)

	standaloneNumeralPattern = regexp.MustCompile(`\b(\d+)\b`)
)

// tier recognises one notation. ok is false when the tier does not apply.
type tier func(raw string) (reference ArticleReference, ok bool)

// tiers are tried in order; the first that applies wins. Anything left over
// is kept verbatim as ReferenceTypeOriginal.
var tiers = []tier{
	placeholderTier,
	structuredTier,
	compactTier,
	inferredTier,
}

// ParseArticleReference classifies raw into exactly one ReferenceType.
func ParseArticleReference(raw string) ArticleReference {
	for _, recognise := range tiers {
		if reference, ok := recognise(raw); ok {
			return reference
		}
	}
	return ArticleReference{Raw: raw, Parsed: raw, Type: ReferenceTypeOriginal}
}

// ParseArticleReferences parses each raw string. An empty input yields a
// single "Not specified" reference so every case keeps one entry.
func ParseArticleReferences(raws []string) []ArticleReference {
	if len(raws) == 0 {
		return []ArticleReference{ParseArticleReference(NotSpecified)}
	}
	references := make([]ArticleReference, 0, len(raws))
	for _, raw := range raws {
		references = append(references, ParseArticleReference(raw))
	}
	return references
}

// placeholderTier matches only the empty string and the exact placeholder.
// Padded variants such as " Not specified " fall through to later tiers.
func placeholderTier(raw string) (ArticleReference, bool) {
	if raw != "" && raw != NotSpecified {
		return ArticleReference{}, false
	}
	return ArticleReference{Raw: raw, Parsed: NotSpecified, Type: ReferenceTypeNone}, true
}

func structuredTier(raw string) (ArticleReference, bool) {
	match := structuredPattern.FindStringSubmatch(raw)
	if match == nil {
		return ArticleReference{}, false
	}
	return digitsReference(raw, ReferenceTypeURIStructured, match[1], match[2], strings.TrimSpace(match[3])), true
}

func compactTier(raw string) (ArticleReference, bool) {
	match := compactPattern.FindStringSubmatch(raw)
	if match == nil {
		return ArticleReference{}, false
	}
	return digitsReference(raw, ReferenceTypeSimple, match[1], match[2], ""), true
}

// inferredTier takes the first standalone numeral. It cannot tell an article
// number from a year or a case number.
func inferredTier(raw string) (ArticleReference, bool) {
	match := standaloneNumeralPattern.FindStringSubmatch(raw)
	if match == nil {
		return ArticleReference{}, false
	}
	return ArticleReference{
		Raw:        raw,
		Parsed:     fmt.Sprintf("Article %s (inferred)", match[1]),
		Type:       ReferenceTypeInferred,
		Components: Components{Article: number(match[1])},
	}, true
}

// digitsReference labels a reference with the digits as written, so "A05P01"
// reads "Article 05, Paragraph 01". Components hold the numeric values.
func digitsReference(raw string, referenceType ReferenceType, articleDigits, paragraphDigits, point string) ArticleReference {
	var builder strings.Builder
	fmt.Fprintf(&builder, "Article %s", articleDigits)
	if paragraphDigits != "" {
		fmt.Fprintf(&builder, ", Paragraph %s", paragraphDigits)
	}
	if point != "" {
		fmt.Fprintf(&builder, ", Point (%s)", point)
	}

	components := Components{Article: number(articleDigits), Point: point}
	if paragraphDigits != "" {
		components.Paragraph = number(paragraphDigits)
	}
	return ArticleReference{
		Raw:        raw,
		Parsed:     builder.String(),
		Type:       referenceType,
		Components: components,
	}
}

// number converts captured digits. Digits that overflow int leave the
// component unset; the label still carries them.
func number(digits string) *int {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &value
}
