package extract

import (
	"strings"

	"github.com/mnov88/marked/pkg/notice"
)

// Concept is one EuroVoc classification entry.
type Concept struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Language string `json:"language"`
}

// Classification holds the EuroVoc entries by category.
type Classification struct {
	Concepts       []Concept `json:"concepts"`
	Domains        []Concept `json:"domains"`
	Microthesaurus []Concept `json:"microthesaurus"`
	Terms          []Concept `json:"terms"`
}

// Total is the number of entries across all categories.
func (classification Classification) Total() int {
	return len(classification.Concepts) + len(classification.Domains) +
		len(classification.Microthesaurus) + len(classification.Terms)
}

const (
	noLabel         = "No label"
	unknownLanguage = "unknown"
)

func extractClassification(fieldScope *fieldScope) Classification {
	return Classification{
		Concepts:       extractConcepts(fieldScope, CategoryConcepts),
		Domains:        extractConcepts(fieldScope, CategoryDomains),
		Microthesaurus: extractConcepts(fieldScope, CategoryMicrothesaurus),
		Terms:          extractConcepts(fieldScope, CategoryTerms),
	}
}

// extractConcepts reads id and label from each container of a category, so a
// label always belongs to the identifier next to it. Containers without an
// identifier are skipped.
func extractConcepts(fieldScope *fieldScope, category string) []Concept {
	concepts := []Concept{}
	collection := fieldScope.mapping.ClassificationCategory(category)
	if collection == nil {
		return concepts
	}

	for _, container := range fieldScope.nodes("eurovoc."+category, collection.Container) {
		id := itemText(container, collection.Item(ItemID))
		if !id.IsPresent() {
			continue
		}

		concept := Concept{ID: id.Value(), Label: noLabel, Language: unknownLanguage}
		if labelNode := itemNode(container, collection.Item(ItemLabel)); labelNode != nil {
			if label := strings.TrimSpace(notice.DirectText(labelNode)); label != "" {
				concept.Label = label
			}
			if language, ok := notice.AttributeValue(labelNode, "lang"); ok && language != "" {
				concept.Language = language
			}
		}
		concepts = append(concepts, concept)
	}
	return concepts
}
