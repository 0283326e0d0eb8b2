package extract

import (
	"strings"
)

// Title holds the titles of the act.
type Title struct {
	// Primary is the title of the working-language expression.
	Primary     Text     `json:"primary"`
	Work        Text     `json:"work"`
	Alternative []string `json:"alternative"`
	Subtitle    []string `json:"subtitle"`
	Short       []string `json:"short"`

	// Multilingual maps a lower-case 3-letter language code to the titles of
	// the expressions in that language.
	Multilingual map[string][]string `json:"multilingual"`
}

// extractTitle reads every expression once: the first expression in language
// supplies primary, short and subtitle; all of them feed Multilingual.
func extractTitle(fieldScope *fieldScope, language string) Title {
	fieldMapping := fieldScope.mapping
	languageSpec := fieldMapping.Field(FieldTitleExpressionLanguage)
	titleSpec := fieldMapping.Field(FieldTitleExpressionTitle)

	title := Title{
		Alternative:  fieldScope.array(FieldTitleAlternative),
		Subtitle:     []string{},
		Short:        []string{},
		Multilingual: map[string][]string{},
	}

	matched := false
	for _, expression := range fieldScope.nodes(FieldTitleExpressions, fieldMapping.Field(FieldTitleExpressions)) {
		expressionLanguage := itemText(expression, languageSpec)
		if !expressionLanguage.IsPresent() {
			continue
		}
		code := strings.ToLower(lastSegment(expressionLanguage.Value()))
		expressionTitle := itemText(expression, titleSpec)

		if expressionTitle.IsPresent() {
			title.Multilingual[code] = append(title.Multilingual[code], expressionTitle.Value())
		}

		if matched || code != language {
			continue
		}
		matched = true
		title.Primary = expressionTitle
		if short := itemText(expression, fieldMapping.Field(FieldTitleExpressionShort)); short.IsPresent() {
			title.Short = []string{short.Value()}
		}
		if subtitle := itemText(expression, fieldMapping.Field(FieldTitleExpressionSubtitle)); subtitle.IsPresent() {
			title.Subtitle = []string{subtitle.Value()}
		}
	}

	if !title.Primary.IsPresent() {
		title.Primary = fieldScope.text(FieldTitlePrimary)
	}
	title.Work = fieldScope.text(FieldTitleWork)
	return title
}
