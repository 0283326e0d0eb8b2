package extract

import (
	"github.com/mnov88/marked/pkg/citation"
)

// CaseLawEntry is one judgment related to the act.
type CaseLawEntry struct {
	CelexID string `json:"celexId"`
	ECLI    Text   `json:"ecli"`

	// Articles are the cited locations as written; "Not specified" when the
	// relation names none.
	Articles       []string                    `json:"articles"`
	ParsedArticles []citation.ArticleReference `json:"parsedArticles"`

	// Type is the relation category label, e.g. "Interpreted by".
	Type string `json:"type"`
}

// RealArticles counts parsed references that point at an article.
func (entry CaseLawEntry) RealArticles() int {
	count := 0
	for _, reference := range entry.ParsedArticles {
		if reference.IsReal() {
			count++
		}
	}
	return count
}

// extractCaseLaw walks the categories in mapping order. A container citing
// several judgments yields one entry per judgment, sharing ECLI and articles.
func extractCaseLaw(fieldScope *fieldScope) []CaseLawEntry {
	entries := []CaseLawEntry{}

	for _, category := range fieldScope.mapping.CaseLaw {
		for _, container := range fieldScope.nodes("caselaw."+category.Name, category.Container) {
			celexIDs := itemArray(container, category.Item(ItemCELEX))
			if len(celexIDs) == 0 {
				continue
			}

			ecli := itemText(container, category.Item(ItemECLI))
			articles := itemArray(container, category.Item(ItemArticles))
			if len(articles) == 0 {
				articles = []string{citation.NotSpecified}
			}

			for _, celexID := range celexIDs {
				entries = append(entries, CaseLawEntry{
					CelexID:        celexID,
					ECLI:           ecli,
					Articles:       articles,
					ParsedArticles: citation.ParseArticleReferences(articles),
					Type:           category.Label,
				})
			}
		}
	}
	return entries
}
