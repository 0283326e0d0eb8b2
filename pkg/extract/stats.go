package extract

// Stats summarises a document.
type Stats struct {
	Languages       int `json:"languages"`
	Cases           int `json:"cases"`
	Eurovoc         int `json:"eurovoc"`
	Articles        int `json:"articles"`
	Relations       int `json:"relations"`
	Implementations int `json:"implementations"`
}

// ComputeStats counts a document's contents. Articles counts only references
// that point at an article, not "Not specified" placeholders.
func ComputeStats(document *Document) Stats {
	if document == nil {
		return Stats{}
	}

	articles := 0
	for _, entry := range document.CaseLaw {
		articles += entry.RealArticles()
	}

	return Stats{
		Languages:       len(document.Languages),
		Cases:           len(document.CaseLaw),
		Eurovoc:         document.Eurovoc.Total(),
		Articles:        articles,
		Relations:       document.LegalRelations.Total(),
		Implementations: len(document.Implementation),
	}
}

// Add accumulates other into stats, for batch totals.
func (stats *Stats) Add(other Stats) {
	stats.Languages += other.Languages
	stats.Cases += other.Cases
	stats.Eurovoc += other.Eurovoc
	stats.Articles += other.Articles
	stats.Relations += other.Relations
	stats.Implementations += other.Implementations
}
