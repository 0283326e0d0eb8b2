package extract

import (
	"github.com/antchfx/xmlquery"

	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

// Mode reports how field groups were scoped for one extraction.
type Mode string

const (
	// ModeMainWork means paths ran relative to the resolved main work.
	ModeMainWork Mode = "main_work"
	// ModeTreeFallback means no main work resolved and paths searched the
	// whole tree, possibly absorbing values of unrelated embedded works.
	ModeTreeFallback Mode = "tree_fallback"
)

// Provenance maps a field key to the "scope:path" that produced its value.
type Provenance map[string]string

func (provenance Provenance) record(key string, scope mapping.Scope, path mapping.Path) {
	if provenance == nil {
		return
	}
	provenance[key] = scope.String() + ":" + path.Raw
}

// fieldScope resolves mapping fields against the main work when there is one
// and against the whole document otherwise, picking the matching path list.
type fieldScope struct {
	mapping    *mapping.Mapping
	node       *xmlquery.Node
	scope      mapping.Scope
	provenance Provenance
}

func newFieldScope(fieldMapping *mapping.Mapping, tree *notice.Tree, mainWork *WorkCandidate, provenance Provenance) *fieldScope {
	if mainWork != nil && mainWork.Node != nil {
		return &fieldScope{mapping: fieldMapping, node: mainWork.Node, scope: mapping.ScopeWork, provenance: provenance}
	}
	return &fieldScope{mapping: fieldMapping, node: tree.Document(), scope: mapping.ScopeTree, provenance: provenance}
}

func (fieldScope *fieldScope) mode() Mode {
	if fieldScope.scope == mapping.ScopeWork {
		return ModeMainWork
	}
	return ModeTreeFallback
}

func (fieldScope *fieldScope) paths(spec *mapping.FieldSpec) []mapping.Path {
	return spec.Paths(fieldScope.scope)
}

// text returns the first present value over the field's paths.
func (fieldScope *fieldScope) text(key string) Text {
	return fieldScope.textOf(key, fieldScope.mapping.Field(key))
}

func (fieldScope *fieldScope) textOf(key string, spec *mapping.FieldSpec) Text {
	for _, path := range fieldScope.paths(spec) {
		if value := TextValue(fieldScope.node, path); value.IsPresent() {
			fieldScope.provenance.record(key, fieldScope.scope, path)
			return value
		}
	}
	return Absent()
}

// array returns the first non-empty list over the field's paths.
func (fieldScope *fieldScope) array(key string) []string {
	for _, path := range fieldScope.paths(fieldScope.mapping.Field(key)) {
		if values := TextArray(fieldScope.node, path); len(values) > 0 {
			fieldScope.provenance.record(key, fieldScope.scope, path)
			return values
		}
	}
	return []string{}
}

// lists returns the values of every path, one list per path, for fields whose
// alternate paths are concatenated rather than tried in turn.
func (fieldScope *fieldScope) lists(key string, spec *mapping.FieldSpec) [][]string {
	paths := fieldScope.paths(spec)
	results := make([][]string, 0, len(paths))
	for _, path := range paths {
		values := TextArray(fieldScope.node, path)
		if len(values) > 0 {
			fieldScope.provenance.record(key, fieldScope.scope, path)
		}
		results = append(results, values)
	}
	return results
}

// nodes returns the first non-empty node set over the spec's paths.
func (fieldScope *fieldScope) nodes(key string, spec *mapping.FieldSpec) []*xmlquery.Node {
	for _, path := range fieldScope.paths(spec) {
		if found := selectPath(fieldScope.node, path); len(found) > 0 {
			fieldScope.provenance.record(key, fieldScope.scope, path)
			return found
		}
	}
	return nil
}

// itemText resolves an item-scoped field relative to node.
func itemText(node *xmlquery.Node, spec *mapping.FieldSpec) Text {
	for _, path := range spec.Paths(mapping.ScopeItem) {
		if value := TextValue(node, path); value.IsPresent() {
			return value
		}
	}
	return Absent()
}

// itemArray returns the first non-empty list of an item-scoped field.
func itemArray(node *xmlquery.Node, spec *mapping.FieldSpec) []string {
	for _, path := range spec.Paths(mapping.ScopeItem) {
		if values := TextArray(node, path); len(values) > 0 {
			return values
		}
	}
	return []string{}
}

// itemNode returns the first node an item-scoped field selects.
func itemNode(node *xmlquery.Node, spec *mapping.FieldSpec) *xmlquery.Node {
	for _, path := range spec.Paths(mapping.ScopeItem) {
		if found := selectPath(node, path); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}
