package extract

// Administrative holds bookkeeping metadata about the act and its notice.
type Administrative struct {
	CreatedBy        Text `json:"createdBy"`
	ResponsibleAgent Text `json:"responsibleAgent"`
	InForce          Text `json:"inForce"`
	SubjectMatter    Text `json:"subjectMatter"`
	DossierReference Text `json:"dossierReference"`
	Version          Text `json:"version"`
	LastModified     Text `json:"lastModified"`
}

func extractAdministrative(fieldScope *fieldScope) Administrative {
	return Administrative{
		CreatedBy:        fieldScope.text(FieldAdministrativeCreatedBy),
		ResponsibleAgent: fieldScope.text(FieldAdministrativeResponsibleAgent),
		InForce:          fieldScope.text(FieldAdministrativeInForce),
		SubjectMatter:    fieldScope.text(FieldAdministrativeSubjectMatter),
		DossierReference: fieldScope.text(FieldAdministrativeDossierReference),
		Version:          fieldScope.text(FieldAdministrativeVersion),
		LastModified:     fieldScope.text(FieldAdministrativeLastModified),
	}
}
