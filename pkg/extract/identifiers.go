package extract

import "github.com/mnov88/marked/pkg/eurlex"

// Identifiers holds the identifiers of the act.
type Identifiers struct {
	CELEX         Text `json:"celex"`
	ELI           Text `json:"eli"`
	OJReference   Text `json:"ojReference"`
	IMMC          Text `json:"immc"`
	NaturalNumber Text `json:"naturalNumber"`
	Type          Text `json:"type"`
	Year          Text `json:"year"`
	Sector        Text `json:"sector"`
}

func extractIdentifiers(fieldScope *fieldScope) Identifiers {
	return Identifiers{
		CELEX:         preferOriginalAct(fieldScope.array(FieldIdentifiersCELEX)),
		ELI:           fieldScope.text(FieldIdentifiersELI),
		OJReference:   fieldScope.text(FieldIdentifiersOJReference),
		IMMC:          fieldScope.text(FieldIdentifiersIMMC),
		NaturalNumber: fieldScope.text(FieldIdentifiersNaturalNumber),
		Type:          fieldScope.text(FieldIdentifiersType),
		Year:          fieldScope.text(FieldIdentifiersYear),
		Sector:        fieldScope.text(FieldIdentifiersSector),
	}
}

// preferOriginalAct picks the first sector-3 CELEX, else the first value.
// A work's subtree also carries the CELEX of embedded related documents.
func preferOriginalAct(celexValues []string) Text {
	for _, celex := range celexValues {
		if eurlex.IsOriginalAct(celex) {
			return Present(celex)
		}
	}
	if len(celexValues) > 0 {
		return Present(celexValues[0])
	}
	return Absent()
}
