package extract

import "fmt"

// Dates holds the key dates of the act, as written in the notice.
type Dates struct {
	Document              Text `json:"document"`
	Publication           Text `json:"publication"`
	Signature             Text `json:"signature"`
	EntryIntoForce        Text `json:"entryIntoForce"`
	EndOfValidity         Text `json:"endOfValidity"`
	TranspositionDeadline Text `json:"transpositionDeadline"`
}

func extractDates(fieldScope *fieldScope) Dates {
	return Dates{
		Document:              documentDate(fieldScope),
		Publication:           fieldScope.text(FieldDatesPublication),
		Signature:             fieldScope.text(FieldDatesSignature),
		EntryIntoForce:        fieldScope.text(FieldDatesEntryIntoForce),
		EndOfValidity:         fieldScope.text(FieldDatesEndOfValidity),
		TranspositionDeadline: fieldScope.text(FieldDatesTranspositionDeadline),
	}
}

// documentDate prefers the VALUE form and otherwise assembles YYYY-MM-DD
// from separate parts, which older notices use. All three parts are needed.
func documentDate(fieldScope *fieldScope) Text {
	if value := fieldScope.text(FieldDatesDocument); value.IsPresent() {
		return value
	}

	year := fieldScope.text(FieldDatesDocumentYear)
	month := fieldScope.text(FieldDatesDocumentMonth)
	day := fieldScope.text(FieldDatesDocumentDay)
	if !year.IsPresent() || !month.IsPresent() || !day.IsPresent() {
		return Absent()
	}
	return Present(fmt.Sprintf("%s-%s-%s", year.Value(), zeroPad(month.Value(), 2), zeroPad(day.Value(), 2)))
}

func zeroPad(value string, width int) string {
	for len(value) < width {
		value = "0" + value
	}
	return value
}
