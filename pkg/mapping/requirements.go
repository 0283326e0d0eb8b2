package mapping

import (
	"fmt"
	"strings"
)

// FieldRequirement names a field key and the scopes its consumer resolves it in.
type FieldRequirement struct {
	Key    string
	Scopes Scope
}

// CollectionRequirement names a collection and the item keys its consumer reads.
type CollectionRequirement struct {
	Name  string
	Items []string
}

// Requirements is what an extractor needs from a mapping before it may run.
type Requirements struct {
	Fields         []FieldRequirement
	Relations      []string
	Classification []CollectionRequirement

	// CaseLawItems must be declared by every case-law category; at least one
	// category must exist.
	CaseLawItems []string

	Implementation *CollectionRequirement
}

// ValidationError collects every problem found by Validate.
type ValidationError struct {
	Source   string
	Problems []string
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("mapping %s is incomplete: %s",
		validationError.Source, strings.Join(validationError.Problems, "; "))
}

// Unwrap makes errors.Is(err, ErrMissingField) hold.
func (validationError *ValidationError) Unwrap() error {
	return ErrMissingField
}

// Validate checks that the mapping declares everything in requirements.
// It reports all problems at once.
func (mapping *Mapping) Validate(requirements Requirements) error {
	var problems []string

	for _, required := range requirements.Fields {
		spec := mapping.Fields[required.Key]
		if spec == nil {
			problems = append(problems, fmt.Sprintf("field %q", required.Key))
			continue
		}
		if !spec.Has(required.Scopes) {
			problems = append(problems, fmt.Sprintf("field %q needs %s paths", required.Key, required.Scopes))
		}
	}

	for _, kind := range requirements.Relations {
		spec := mapping.Relations[kind]
		if spec == nil {
			problems = append(problems, fmt.Sprintf("relation %q", kind))
			continue
		}
		if !spec.Has(ScopeWork | ScopeTree) {
			problems = append(problems, fmt.Sprintf("relation %q needs work+tree paths", kind))
		}
	}

	for _, required := range requirements.Classification {
		collection := mapping.ClassificationCategory(required.Name)
		if collection == nil {
			problems = append(problems, fmt.Sprintf("classification %q", required.Name))
			continue
		}
		problems = append(problems, collectionProblems("classification", collection, required.Items)...)
	}

	if len(requirements.CaseLawItems) > 0 {
		if len(mapping.CaseLaw) == 0 {
			problems = append(problems, "caselaw categories")
		}
		for _, collection := range mapping.CaseLaw {
			if collection.Label == "" {
				problems = append(problems, fmt.Sprintf("caselaw %q label", collection.Name))
			}
			problems = append(problems, collectionProblems("caselaw", collection, requirements.CaseLawItems)...)
		}
	}

	if requirements.Implementation != nil {
		if mapping.Implementation == nil {
			problems = append(problems, "implementation")
		} else {
			problems = append(problems, collectionProblems("implementation", mapping.Implementation, requirements.Implementation.Items)...)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Source: mapping.source, Problems: problems}
	}
	return nil
}

func collectionProblems(section string, collection *CollectionSpec, items []string) []string {
	var problems []string
	if !collection.Container.Has(ScopeWork | ScopeTree) {
		problems = append(problems, fmt.Sprintf("%s %q container needs work+tree paths", section, collection.Name))
	}
	for _, key := range items {
		if !collection.Item(key).Has(ScopeItem) {
			problems = append(problems, fmt.Sprintf("%s %q item %q", section, collection.Name, key))
		}
	}
	return problems
}
