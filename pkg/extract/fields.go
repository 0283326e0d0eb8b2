package extract

import "github.com/mnov88/marked/pkg/mapping"

// Field keys the extractor resolves through the mapping.
const (
	FieldMainWorkCandidates  = "mainwork.candidates"
	FieldMainWorkIdentifiers = "mainwork.identifiers"

	FieldLanguagesExpression = "languages.expression"
	FieldLanguagesElement    = "languages.element"
	FieldLanguagesAttribute  = "languages.attribute"

	FieldTitleExpressions        = "title.expressions"
	FieldTitleExpressionLanguage = "title.expression_language"
	FieldTitleExpressionTitle    = "title.expression_title"
	FieldTitleExpressionShort    = "title.expression_short"
	FieldTitleExpressionSubtitle = "title.expression_subtitle"
	FieldTitlePrimary            = "title.primary"
	FieldTitleWork               = "title.work"
	FieldTitleAlternative        = "title.alternative"

	FieldDatesDocument              = "dates.document"
	FieldDatesDocumentYear          = "dates.document_year"
	FieldDatesDocumentMonth         = "dates.document_month"
	FieldDatesDocumentDay           = "dates.document_day"
	FieldDatesPublication           = "dates.publication"
	FieldDatesSignature             = "dates.signature"
	FieldDatesEntryIntoForce        = "dates.entry_into_force"
	FieldDatesEndOfValidity         = "dates.end_of_validity"
	FieldDatesTranspositionDeadline = "dates.transposition_deadline"

	FieldIdentifiersCELEX         = "identifiers.celex"
	FieldIdentifiersELI           = "identifiers.eli"
	FieldIdentifiersOJReference   = "identifiers.oj_reference"
	FieldIdentifiersIMMC          = "identifiers.immc"
	FieldIdentifiersNaturalNumber = "identifiers.natural_number"
	FieldIdentifiersType          = "identifiers.type"
	FieldIdentifiersYear          = "identifiers.year"
	FieldIdentifiersSector        = "identifiers.sector"

	FieldAdministrativeCreatedBy        = "administrative.created_by"
	FieldAdministrativeResponsibleAgent = "administrative.responsible_agent"
	FieldAdministrativeInForce          = "administrative.in_force"
	FieldAdministrativeSubjectMatter    = "administrative.subject_matter"
	FieldAdministrativeDossierReference = "administrative.dossier_reference"
	FieldAdministrativeVersion          = "administrative.version"
	FieldAdministrativeLastModified     = "administrative.last_modified"
)

// Relation kinds, in output order.
const (
	RelationBasedOn        = "basedOn"
	RelationCites          = "cites"
	RelationAmends         = "amends"
	RelationRepeals        = "repeals"
	RelationConsolidatedBy = "consolidatedBy"
	RelationCorrectedBy    = "correctedBy"
	RelationTreatyBasis    = "treatyBasis"
)

// RelationKinds lists every relation kind in output order.
var RelationKinds = []string{
	RelationBasedOn,
	RelationCites,
	RelationAmends,
	RelationRepeals,
	RelationConsolidatedBy,
	RelationCorrectedBy,
	RelationTreatyBasis,
}

// Classification categories and item keys.
const (
	CategoryConcepts       = "concepts"
	CategoryDomains        = "domains"
	CategoryMicrothesaurus = "microthesaurus"
	CategoryTerms          = "terms"

	ItemID    = "id"
	ItemLabel = "label"
)

// ClassificationCategories lists the EuroVoc categories in output order.
var ClassificationCategories = []string{
	CategoryConcepts,
	CategoryDomains,
	CategoryMicrothesaurus,
	CategoryTerms,
}

// Case-law and implementation item keys.
const (
	ItemCELEX      = "celex"
	ItemECLI       = "ecli"
	ItemArticles   = "articles"
	ItemIdentifier = "identifier"
	ItemCountry    = "country"
)

// work+tree fields: resolved relative to the main work or across the tree.
var scopedFields = []string{
	FieldTitleExpressions,
	FieldTitlePrimary,
	FieldTitleWork,
	FieldTitleAlternative,
	FieldDatesDocument,
	FieldDatesDocumentYear,
	FieldDatesDocumentMonth,
	FieldDatesDocumentDay,
	FieldDatesPublication,
	FieldDatesSignature,
	FieldDatesEntryIntoForce,
	FieldDatesEndOfValidity,
	FieldDatesTranspositionDeadline,
	FieldIdentifiersCELEX,
	FieldIdentifiersELI,
	FieldIdentifiersOJReference,
	FieldIdentifiersIMMC,
	FieldIdentifiersNaturalNumber,
	FieldIdentifiersType,
	FieldIdentifiersYear,
	FieldIdentifiersSector,
	FieldAdministrativeCreatedBy,
	FieldAdministrativeResponsibleAgent,
	FieldAdministrativeInForce,
	FieldAdministrativeSubjectMatter,
	FieldAdministrativeDossierReference,
	FieldAdministrativeVersion,
	FieldAdministrativeLastModified,
}

// Requirements lists everything the extractor reads from a mapping.
func Requirements() mapping.Requirements {
	requirements := mapping.Requirements{
		Fields: []mapping.FieldRequirement{
			{Key: FieldMainWorkCandidates, Scopes: mapping.ScopeTree},
			{Key: FieldMainWorkIdentifiers, Scopes: mapping.ScopeItem},
			{Key: FieldLanguagesExpression, Scopes: mapping.ScopeTree},
			{Key: FieldLanguagesElement, Scopes: mapping.ScopeTree},
			{Key: FieldLanguagesAttribute, Scopes: mapping.ScopeTree},
			{Key: FieldTitleExpressionLanguage, Scopes: mapping.ScopeItem},
			{Key: FieldTitleExpressionTitle, Scopes: mapping.ScopeItem},
			{Key: FieldTitleExpressionShort, Scopes: mapping.ScopeItem},
			{Key: FieldTitleExpressionSubtitle, Scopes: mapping.ScopeItem},
		},
		Relations:      RelationKinds,
		CaseLawItems:   []string{ItemCELEX, ItemECLI, ItemArticles},
		Implementation: &mapping.CollectionRequirement{Items: []string{ItemIdentifier, ItemCountry}},
	}

	for _, key := range scopedFields {
		requirements.Fields = append(requirements.Fields,
			mapping.FieldRequirement{Key: key, Scopes: mapping.ScopeWork | mapping.ScopeTree})
	}
	for _, category := range ClassificationCategories {
		requirements.Classification = append(requirements.Classification,
			mapping.CollectionRequirement{Name: category, Items: []string{ItemID, ItemLabel}})
	}
	return requirements
}
