// Package mapping loads the declarative field mapping that drives extraction.
//
// The mapping names every semantic field once and lists, per scope, the XPath
// expressions to try in order. Extraction code only knows field keys; paths
// can be retuned in YAML without touching it.
package mapping

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/antchfx/xpath"
	"gopkg.in/yaml.v3"
)

//go:embed cellar_xpath.yaml
var defaultFS embed.FS

// DefaultName is the name of the embedded default mapping.
const DefaultName = "cellar_xpath.yaml"

// ErrMissingField marks a required mapping entry that is absent.
var ErrMissingField = errors.New("required mapping entry missing")

// Scope selects which variant of a field's paths applies.
type Scope uint8

const (
	// ScopeWork paths are relative to the resolved main work.
	ScopeWork Scope = 1 << iota
	// ScopeTree paths search the whole document; used when no main work resolved.
	ScopeTree
	// ScopeItem paths are relative to a node produced by another field.
	ScopeItem
)

// String returns the YAML key of the scope.
func (scope Scope) String() string {
	switch scope {
	case ScopeWork:
		return "work"
	case ScopeTree:
		return "tree"
	case ScopeItem:
		return "item"
	}

	var names []string
	for _, single := range []Scope{ScopeWork, ScopeTree, ScopeItem} {
		if scope&single != 0 {
			names = append(names, single.String())
		}
	}
	return strings.Join(names, "+")
}

// Path is one compiled path expression.
type Path struct {
	Raw  string
	Expr *xpath.Expr

	// Absolute paths ("//X", "(//X)[2]") search the whole document whatever
	// node they are evaluated from.
	Absolute bool
}

func isAbsolute(expression string) bool {
	return strings.HasPrefix(strings.TrimLeft(strings.TrimSpace(expression), "("), "/")
}

// FieldSpec lists the path expressions for one semantic field.
type FieldSpec struct {
	Work []string `yaml:"work,omitempty" json:"work,omitempty"`
	Tree []string `yaml:"tree,omitempty" json:"tree,omitempty"`
	Item []string `yaml:"item,omitempty" json:"item,omitempty"`

	compiled map[Scope][]Path
}

// Paths returns the compiled paths for one scope, in declaration order.
func (spec *FieldSpec) Paths(scope Scope) []Path {
	if spec == nil {
		return nil
	}
	return spec.compiled[scope]
}

// Has reports whether every scope in scopes declares at least one path.
func (spec *FieldSpec) Has(scopes Scope) bool {
	if spec == nil {
		return false
	}
	for _, single := range []Scope{ScopeWork, ScopeTree, ScopeItem} {
		if scopes&single != 0 && len(spec.raw(single)) == 0 {
			return false
		}
	}
	return true
}

func (spec *FieldSpec) raw(scope Scope) []string {
	switch scope {
	case ScopeWork:
		return spec.Work
	case ScopeTree:
		return spec.Tree
	case ScopeItem:
		return spec.Item
	}
	return nil
}

func (spec *FieldSpec) compile() error {
	spec.compiled = make(map[Scope][]Path, 3)
	for _, scope := range []Scope{ScopeWork, ScopeTree, ScopeItem} {
		for _, expression := range spec.raw(scope) {
			expr, err := xpath.Compile(expression)
			if err != nil {
				return fmt.Errorf("%s path %q: %w", scope, expression, err)
			}
			spec.compiled[scope] = append(spec.compiled[scope], Path{
				Raw:      expression,
				Expr:     expr,
				Absolute: isAbsolute(expression),
			})
		}
	}
	return nil
}

// CollectionSpec describes a repeating structure: container nodes located via
// Container, and per-container fields resolved with item-scoped paths.
type CollectionSpec struct {
	Name      string                `yaml:"name" json:"name"`
	Label     string                `yaml:"label,omitempty" json:"label,omitempty"`
	Container *FieldSpec            `yaml:"container" json:"container"`
	Items     map[string]*FieldSpec `yaml:"items" json:"items"`
}

// Item returns the named per-container field, or nil.
func (collection *CollectionSpec) Item(key string) *FieldSpec {
	if collection == nil {
		return nil
	}
	return collection.Items[key]
}

func (collection *CollectionSpec) compile() error {
	if collection.Container == nil {
		return fmt.Errorf("collection %q has no container", collection.Name)
	}
	if err := collection.Container.compile(); err != nil {
		return fmt.Errorf("collection %q container: %w", collection.Name, err)
	}
	for key, item := range collection.Items {
		if item == nil {
			return fmt.Errorf("collection %q item %q is empty", collection.Name, key)
		}
		if err := item.compile(); err != nil {
			return fmt.Errorf("collection %q item %q: %w", collection.Name, key, err)
		}
	}
	return nil
}

// Mapping is a loaded and compiled field mapping. It is read-only after Load
// and safe to share across concurrent extractions.
type Mapping struct {
	Version        string                `yaml:"version" json:"version"`
	Fields         map[string]*FieldSpec `yaml:"fields" json:"fields"`
	Relations      map[string]*FieldSpec `yaml:"relations" json:"relations"`
	Classification []*CollectionSpec     `yaml:"classification" json:"classification"`
	CaseLaw        []*CollectionSpec     `yaml:"caselaw" json:"caselaw"`
	Implementation *CollectionSpec       `yaml:"implementation" json:"implementation"`

	source string
}

// Source returns where the mapping was loaded from.
func (mapping *Mapping) Source() string {
	return mapping.source
}

// Field returns the named field spec, or nil.
func (mapping *Mapping) Field(key string) *FieldSpec {
	return mapping.Fields[key]
}

// Relation returns the path spec for a relation kind, or nil.
func (mapping *Mapping) Relation(kind string) *FieldSpec {
	return mapping.Relations[kind]
}

// ClassificationCategory returns the named classification collection, or nil.
func (mapping *Mapping) ClassificationCategory(name string) *CollectionSpec {
	return findCollection(mapping.Classification, name)
}

// FieldKeys returns all field keys, sorted.
func (mapping *Mapping) FieldKeys() []string {
	keys := make([]string, 0, len(mapping.Fields))
	for key := range mapping.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Load reads and compiles a mapping file.
func Load(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping file: %w", err)
	}
	return Parse(data, path)
}

// LoadDefault returns the embedded CELLAR mapping.
func LoadDefault() (*Mapping, error) {
	data, err := defaultFS.ReadFile(DefaultName)
	if err != nil {
		return nil, fmt.Errorf("reading embedded mapping: %w", err)
	}
	return Parse(data, "embedded:"+DefaultName)
}

// DefaultYAML returns the raw embedded mapping, for `mapping show`.
func DefaultYAML() ([]byte, error) {
	return defaultFS.ReadFile(DefaultName)
}

// Parse decodes and compiles mapping YAML. source is only used in messages.
func Parse(data []byte, source string) (*Mapping, error) {
	var mapping Mapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing mapping YAML %s: %w", source, err)
	}
	mapping.source = source

	if err := mapping.Compile(); err != nil {
		return nil, fmt.Errorf("compiling mapping %s: %w", source, err)
	}
	return &mapping, nil
}

// Compile compiles every path expression. Invalid XPath fails the whole mapping.
func (mapping *Mapping) Compile() error {
	for key, spec := range mapping.Fields {
		if spec == nil {
			return fmt.Errorf("field %q is empty", key)
		}
		if err := spec.compile(); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	for kind, spec := range mapping.Relations {
		if spec == nil {
			return fmt.Errorf("relation %q is empty", kind)
		}
		if err := spec.compile(); err != nil {
			return fmt.Errorf("relation %q: %w", kind, err)
		}
	}
	for _, collection := range mapping.Classification {
		if err := collection.compile(); err != nil {
			return fmt.Errorf("classification: %w", err)
		}
	}
	for _, collection := range mapping.CaseLaw {
		if err := collection.compile(); err != nil {
			return fmt.Errorf("caselaw: %w", err)
		}
	}
	if mapping.Implementation != nil {
		if err := mapping.Implementation.compile(); err != nil {
			return fmt.Errorf("implementation: %w", err)
		}
	}
	return nil
}

func findCollection(collections []*CollectionSpec, name string) *CollectionSpec {
	for _, collection := range collections {
		if collection != nil && collection.Name == name {
			return collection
		}
	}
	return nil
}
