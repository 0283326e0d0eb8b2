package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/segmentio/encoding/json"

	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

// NotFound is how an absent value is written out.
const NotFound = "Not found"

// Text is a resolved scalar field. The zero value is absent, which is not the
// same as a present empty string.
type Text struct {
	value   string
	present bool
}

// Present wraps a resolved value.
func Present(value string) Text {
	return Text{value: value, present: true}
}

// Absent returns the absent value.
func Absent() Text {
	return Text{}
}

// IsPresent reports whether a path produced this value.
func (text Text) IsPresent() bool {
	return text.present
}

// Value returns the resolved string, or "" when absent.
func (text Text) Value() string {
	return text.value
}

// Or returns text when present, otherwise fallback.
func (text Text) Or(fallback Text) Text {
	if text.present {
		return text
	}
	return fallback
}

// String returns the value, or NotFound when absent.
func (text Text) String() string {
	if !text.present {
		return NotFound
	}
	return text.value
}

// MarshalJSON writes absent values as NotFound.
func (text Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(text.String())
}

// TextValue returns the trimmed direct text of the first node path selects
// from contextNode. No match, or only whitespace, is absent.
func TextValue(contextNode *xmlquery.Node, path mapping.Path) Text {
	nodes := selectPath(contextNode, path)
	if len(nodes) == 0 {
		return Absent()
	}
	value := strings.TrimSpace(notice.DirectText(nodes[0]))
	if value == "" {
		return Absent()
	}
	return Present(value)
}

// TextArray returns the trimmed direct text of every node path selects, in
// document order. Empty strings are dropped; duplicates are kept.
func TextArray(contextNode *xmlquery.Node, path mapping.Path) []string {
	nodes := selectPath(contextNode, path)
	values := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if value := strings.TrimSpace(notice.DirectText(node)); value != "" {
			values = append(values, value)
		}
	}
	return values
}

// selectPath evaluates path from contextNode. Absolute paths are evaluated
// from the document so that "//X" in a work-scoped list still sees the
// expressions and works next to the main work.
func selectPath(contextNode *xmlquery.Node, path mapping.Path) []*xmlquery.Node {
	if path.Absolute {
		contextNode = notice.DocumentOf(contextNode)
	}
	return notice.SelectFrom(contextNode, path.Expr)
}
