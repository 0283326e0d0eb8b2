package extract

// Document is everything extracted about one act.
type Document struct {
	Languages      []string                `json:"languages"`
	Title          Title                   `json:"title"`
	Dates          Dates                   `json:"dates"`
	Identifiers    Identifiers             `json:"identifiers"`
	Eurovoc        Classification          `json:"eurovoc"`
	CaseLaw        []CaseLawEntry          `json:"caselaw"`
	Implementation []ImplementationMeasure `json:"implementation"`
	LegalRelations LegalRelations          `json:"legalRelations"`
	Metadata       Administrative          `json:"metadata"`
}

// Extraction describes how a record was produced, so consumers can audit
// records extracted without a resolved main work.
type Extraction struct {
	Mode          Mode   `json:"mode"`
	MainWorkCELEX string `json:"main_work_celex,omitempty"`
	Candidates    int    `json:"candidates"`
	Hint          string `json:"hint,omitempty"`
	Mapping       string `json:"mapping"`

	// Provenance is only filled when tracing is enabled.
	Provenance Provenance `json:"provenance,omitempty"`
}

// Record is the output for one notice.
type Record struct {
	ExtractionTimestamp string     `json:"extraction_timestamp"`
	SelectedLanguage    string     `json:"selected_language"`
	AvailableLanguages  []string   `json:"available_languages"`
	Extraction          Extraction `json:"extraction"`
	Document            Document   `json:"document"`
	Stats               Stats      `json:"stats"`

	celex string
}

// CELEX returns the identifier the record is named after.
func (record *Record) CELEX() string {
	return record.celex
}
