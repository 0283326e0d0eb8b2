package extract

// LegalRelations holds the identifiers of related acts by relation kind.
// Every list is duplicate-free and in first-seen order.
type LegalRelations struct {
	BasedOn        []string `json:"basedOn"`
	Cites          []string `json:"cites"`
	Amends         []string `json:"amends"`
	Repeals        []string `json:"repeals"`
	ConsolidatedBy []string `json:"consolidatedBy"`
	CorrectedBy    []string `json:"correctedBy"`
	TreatyBasis    []string `json:"treatyBasis"`
}

// Total is the number of identifiers across all kinds.
func (relations LegalRelations) Total() int {
	total := 0
	for _, kind := range RelationKinds {
		total += len(relations.Kind(kind))
	}
	return total
}

// Kind returns the list for a relation kind, or nil for an unknown kind.
func (relations LegalRelations) Kind(kind string) []string {
	switch kind {
	case RelationBasedOn:
		return relations.BasedOn
	case RelationCites:
		return relations.Cites
	case RelationAmends:
		return relations.Amends
	case RelationRepeals:
		return relations.Repeals
	case RelationConsolidatedBy:
		return relations.ConsolidatedBy
	case RelationCorrectedBy:
		return relations.CorrectedBy
	case RelationTreatyBasis:
		return relations.TreatyBasis
	}
	return nil
}

// RawRelations holds, per relation kind, one list per alternate path.
type RawRelations map[string][][]string

// AggregateRelations concatenates each kind's lists and drops repeated
// identifiers, keeping the first occurrence. Kinds missing from raw yield
// empty lists.
func AggregateRelations(raw RawRelations) LegalRelations {
	merged := func(kind string) []string {
		return dedupe(raw[kind])
	}
	return LegalRelations{
		BasedOn:        merged(RelationBasedOn),
		Cites:          merged(RelationCites),
		Amends:         merged(RelationAmends),
		Repeals:        merged(RelationRepeals),
		ConsolidatedBy: merged(RelationConsolidatedBy),
		CorrectedBy:    merged(RelationCorrectedBy),
		TreatyBasis:    merged(RelationTreatyBasis),
	}
}

func dedupe(lists [][]string) []string {
	seen := make(map[string]struct{})
	unique := []string{}
	for _, list := range lists {
		for _, identifier := range list {
			if _, duplicate := seen[identifier]; duplicate {
				continue
			}
			seen[identifier] = struct{}{}
			unique = append(unique, identifier)
		}
	}
	return unique
}

func collectRelations(fieldScope *fieldScope) RawRelations {
	raw := make(RawRelations, len(RelationKinds))
	for _, kind := range RelationKinds {
		raw[kind] = fieldScope.lists("relations."+kind, fieldScope.mapping.Relation(kind))
	}
	return raw
}
