package extract

import (
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

// languageStrategy turns the nodes of one mapping field into language codes.
type languageStrategy struct {
	field string
	codes func(node *xmlquery.Node) []string
}

// languageStrategies are independent; their results are unioned.
var languageStrategies = []languageStrategy{
	// Authority URIs such as .../language/ENG: last segment, 3 letters.
	{field: FieldLanguagesExpression, codes: func(node *xmlquery.Node) []string {
		return keepLength(lastSegment(notice.DirectText(node)), 3)
	}},
	{field: FieldLanguagesElement, codes: func(node *xmlquery.Node) []string {
		return keepLength(notice.DirectText(node), 3)
	}},
	// xml:lang and lang attributes carry 2- or 3-letter codes.
	{field: FieldLanguagesAttribute, codes: func(node *xmlquery.Node) []string {
		var codes []string
		for _, value := range notice.AttributeValues(node, "lang") {
			codes = append(codes, keepLength(value, 2, 3)...)
		}
		return codes
	}},
}

// DetectLanguages returns the sorted, lower-cased union of the language codes
// every strategy finds anywhere in the tree.
func DetectLanguages(tree *notice.Tree, fieldMapping *mapping.Mapping) []string {
	seen := make(map[string]struct{})
	for _, strategy := range languageStrategies {
		for _, path := range fieldMapping.Field(strategy.field).Paths(mapping.ScopeTree) {
			for _, node := range tree.Select(path.Expr) {
				for _, code := range strategy.codes(node) {
					seen[code] = struct{}{}
				}
			}
		}
	}

	languages := make([]string, 0, len(seen))
	for code := range seen {
		languages = append(languages, code)
	}
	sort.Strings(languages)
	return languages
}

// lastSegment returns the text after the final '/', trimmed.
func lastSegment(value string) string {
	value = strings.TrimSpace(value)
	if index := strings.LastIndex(value, "/"); index >= 0 {
		return value[index+1:]
	}
	return value
}

func keepLength(code string, lengths ...int) []string {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, length := range lengths {
		if len(code) == length {
			return []string{code}
		}
	}
	return nil
}
