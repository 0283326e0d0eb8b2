// Package notice loads CELLAR tree notices into a read-only, queryable XML tree.
//
// A tree notice is not a single document record: next to the act itself it
// embeds amending acts, consolidated versions, case law and corrigenda, so
// every query against it has to be scoped with care by the caller.
package notice

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// DefaultFilename is the conventional name of a tree notice inside a document folder.
const DefaultFilename = "cellar_tree_notice.xml"

// ErrMalformed classifies input that could not be parsed as XML.
var ErrMalformed = errors.New("malformed notice XML")

// ParseError reports why a notice could not be loaded.
type ParseError struct {
	Source string
	Err    error
}

func (parseError *ParseError) Error() string {
	if parseError.Source == "" {
		return fmt.Sprintf("failed to parse notice: %v", parseError.Err)
	}
	return fmt.Sprintf("failed to parse notice %s: %v", parseError.Source, parseError.Err)
}

// Unwrap lets errors.Is match both ErrMalformed and the underlying decoder error.
func (parseError *ParseError) Unwrap() []error {
	return []error{ErrMalformed, parseError.Err}
}

// Tree is a parsed notice. It is never mutated after Parse returns.
type Tree struct {
	document *xmlquery.Node
	root     *xmlquery.Node
	source   string
}

// Parse loads raw notice bytes.
func Parse(data []byte) (*Tree, error) {
	return parse(data, "")
}

// ParseFile reads and parses the notice at path. Read failures are returned
// as-is; only undecodable content yields a *ParseError.
func ParseFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notice %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Source: source, Err: errors.New("empty document")}
	}

	document, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	root := firstElement(document)
	if root == nil {
		return nil, &ParseError{Source: source, Err: errors.New("no root element")}
	}

	return &Tree{document: document, root: root, source: source}, nil
}

// Document returns the document node, the context for tree-wide queries.
func (tree *Tree) Document() *xmlquery.Node {
	return tree.document
}

// Root returns the top-level element (NOTICE in CELLAR output).
func (tree *Tree) Root() *xmlquery.Node {
	return tree.root
}

// Source returns the file the tree was read from, or "" for in-memory input.
func (tree *Tree) Source() string {
	return tree.source
}

// Select evaluates a compiled expression against the whole document.
func (tree *Tree) Select(expr *xpath.Expr) []*xmlquery.Node {
	return SelectFrom(tree.document, expr)
}

// Query compiles and evaluates an ad-hoc expression against the whole document.
func (tree *Tree) Query(expression string) ([]*xmlquery.Node, error) {
	expr, err := xpath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid path expression %q: %w", expression, err)
	}
	return tree.Select(expr), nil
}

// SelectFrom evaluates expr with contextNode as the XPath context node.
// xmlquery treats contextNode as the root of the navigation, so an absolute
// expression (//X) only searches beneath it. Callers that need a
// document-wide search pass DocumentOf(contextNode).
func SelectFrom(contextNode *xmlquery.Node, expr *xpath.Expr) []*xmlquery.Node {
	if contextNode == nil || expr == nil {
		return nil
	}
	return xmlquery.QuerySelectorAll(contextNode, expr)
}

// DocumentOf returns the document node node belongs to.
func DocumentOf(node *xmlquery.Node) *xmlquery.Node {
	if node == nil {
		return nil
	}
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

// DirectText returns the text an element carries before its first child
// element. Text and attribute nodes return their value.
func DirectText(node *xmlquery.Node) string {
	if node == nil {
		return ""
	}

	switch node.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return node.Data
	case xmlquery.AttributeNode:
		return node.InnerText()
	}

	var builder strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			break
		}
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			builder.WriteString(child.Data)
		}
	}
	return builder.String()
}

// AttributeValue returns the value of the first attribute whose local name is
// localName, ignoring its namespace prefix.
func AttributeValue(node *xmlquery.Node, localName string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, attribute := range node.Attr {
		if attribute.Name.Local == localName {
			return attribute.Value, true
		}
	}
	return "", false
}

// AttributeValues returns the values of every attribute whose local name is
// localName, in document order, so xml:lang and lang on one element are both
// reported.
func AttributeValues(node *xmlquery.Node, localName string) []string {
	if node == nil {
		return nil
	}
	var values []string
	for _, attribute := range node.Attr {
		if attribute.Name.Local == localName {
			values = append(values, attribute.Value)
		}
	}
	return values
}

func firstElement(document *xmlquery.Node) *xmlquery.Node {
	for child := document.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}
