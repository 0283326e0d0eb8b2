// Package citation parses the article citations that CELLAR attaches to
// case-law relations into one structured form.
//
// Notices spanning several decades encode the cited location in at least three
// incompatible notations: annotated URI fragments ("{AR|...} 58 {PA|...} 5"),
// the compact legacy form ("A58P5"), and free text. ParseArticleReference
// classifies every string into exactly one ReferenceType and never fails.
package citation

// NotSpecified is the placeholder used when a case cites no article.
const NotSpecified = "Not specified"

// ReferenceType classifies how an article reference was recognised,
// from most to least confident.
type ReferenceType string

const (
	ReferenceTypeNone          ReferenceType = "none"
	ReferenceTypeURIStructured ReferenceType = "uri_structured"
	ReferenceTypeSimple        ReferenceType = "simple"
	ReferenceTypeInferred      ReferenceType = "inferred"
	ReferenceTypeOriginal      ReferenceType = "original"
)

// ArticleReference is a parsed article citation.
type ArticleReference struct {
	// Raw text as found in the notice.
	Raw string `json:"raw"`

	// Human-readable label, e.g. "Article 58, Paragraph 5".
	Parsed string `json:"parsed"`

	Type       ReferenceType `json:"type"`
	Components Components    `json:"components"`
}

// Components holds the recognised parts of a reference. Unset parts are nil
// or empty and are omitted from JSON.
type Components struct {
	Article   *int   `json:"article,omitempty"`
	Paragraph *int   `json:"paragraph,omitempty"`
	Point     string `json:"point,omitempty"`
}

// IsReal reports whether the reference points at an article, i.e. it is not
// the "Not specified" placeholder.
func (reference ArticleReference) IsReal() bool {
	return reference.Type != ReferenceTypeNone
}
