package extract

import (
	"github.com/antchfx/xmlquery"

	"github.com/mnov88/marked/pkg/eurlex"
	"github.com/mnov88/marked/pkg/mapping"
	"github.com/mnov88/marked/pkg/notice"
)

// WorkCandidate is a work node that might be the act a notice describes.
type WorkCandidate struct {
	Node        *xmlquery.Node
	Identifiers []string
	// Position is the candidate's index in document order.
	Position int
}

// IsOriginalAct reports whether any identifier is a sector-3 CELEX.
func (candidate *WorkCandidate) IsOriginalAct() bool {
	return candidate.originalActIdentifier() != ""
}

// Contains reports whether identifier is one of the candidate's identifiers.
func (candidate *WorkCandidate) Contains(identifier string) bool {
	for _, own := range candidate.Identifiers {
		if own == identifier {
			return true
		}
	}
	return false
}

// CELEX returns the candidate's sector-3 identifier, else its first one.
func (candidate *WorkCandidate) CELEX() string {
	if candidate == nil {
		return ""
	}
	if identifier := candidate.originalActIdentifier(); identifier != "" {
		return identifier
	}
	if len(candidate.Identifiers) > 0 {
		return candidate.Identifiers[0]
	}
	return ""
}

func (candidate *WorkCandidate) originalActIdentifier() string {
	for _, identifier := range candidate.Identifiers {
		if eurlex.IsOriginalAct(identifier) {
			return identifier
		}
	}
	return ""
}

// selectionRule picks a candidate or returns nil to defer to the next rule.
type selectionRule func(candidates []*WorkCandidate, hint string) *WorkCandidate

// selectionRules are tried in order; the first non-nil choice wins.
var selectionRules = []selectionRule{
	selectByHint,
	selectOriginalAct,
	selectFirst,
}

func selectByHint(candidates []*WorkCandidate, hint string) *WorkCandidate {
	if hint == "" {
		return nil
	}
	for _, candidate := range candidates {
		if candidate.Contains(hint) {
			return candidate
		}
	}
	return nil
}

func selectOriginalAct(candidates []*WorkCandidate, _ string) *WorkCandidate {
	for _, candidate := range candidates {
		if candidate.IsOriginalAct() {
			return candidate
		}
	}
	return nil
}

func selectFirst(candidates []*WorkCandidate, _ string) *WorkCandidate {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

// SelectMainWork applies the selection rules to already collected candidates.
func SelectMainWork(candidates []*WorkCandidate, hint string) *WorkCandidate {
	for _, rule := range selectionRules {
		if chosen := rule(candidates, hint); chosen != nil {
			return chosen
		}
	}
	return nil
}

// CollectCandidates returns the work nodes found by the first
// mainwork.candidates path that matches anything, with their identifiers.
func CollectCandidates(tree *notice.Tree, fieldMapping *mapping.Mapping) []*WorkCandidate {
	identifierSpec := fieldMapping.Field(FieldMainWorkIdentifiers)

	for _, path := range fieldMapping.Field(FieldMainWorkCandidates).Paths(mapping.ScopeTree) {
		nodes := tree.Select(path.Expr)
		if len(nodes) == 0 {
			continue
		}

		candidates := make([]*WorkCandidate, 0, len(nodes))
		for position, node := range nodes {
			candidates = append(candidates, &WorkCandidate{
				Node:        node,
				Identifiers: itemArray(node, identifierSpec),
				Position:    position,
			})
		}
		return candidates
	}
	return nil
}

// ResolveMainWork picks the work a notice describes: the candidate holding
// hint, else the first original act, else the first candidate. It returns
// nil when the notice has no work nodes at all.
func ResolveMainWork(tree *notice.Tree, fieldMapping *mapping.Mapping, hint string) *WorkCandidate {
	return SelectMainWork(CollectCandidates(tree, fieldMapping), hint)
}

// ActingCELEX is the identifier used to name a record: the main work's
// sector-3 CELEX, else its first identifier, else hint, else "unknown".
func ActingCELEX(mainWork *WorkCandidate, hint string) string {
	if celex := mainWork.CELEX(); celex != "" {
		return celex
	}
	if hint != "" {
		return hint
	}
	return "unknown"
}
