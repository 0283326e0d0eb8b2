package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRelations(t *testing.T) {
	relations := AggregateRelations(RawRelations{
		RelationBasedOn: {
			{"12012E016", "52012PC0011"},
			{"12012E016", "32001R0045"},
		},
		RelationRepeals: {
			{"31995L0046", "31995L0046"},
			{},
		},
		RelationCites: {{"b", "a", "b", "c", "a"}},
	})

	assert.Equal(t, []string{"12012E016", "52012PC0011", "32001R0045"}, relations.BasedOn)
	assert.Equal(t, []string{"31995L0046"}, relations.Repeals)
	assert.Equal(t, []string{"b", "a", "c"}, relations.Cites, "first-seen order")
	assert.Equal(t, []string{}, relations.Amends, "missing kinds are empty, not nil")
	assert.Equal(t, 6, relations.Total())
}

func TestAggregateRelations_NoDuplicates(t *testing.T) {
	relations := AggregateRelations(RawRelations{
		RelationCorrectedBy: {{"x", "y"}, {"y", "x"}, {"z"}},
	})

	for _, kind := range RelationKinds {
		seen := map[string]bool{}
		for _, identifier := range relations.Kind(kind) {
			assert.False(t, seen[identifier], "%s repeats %s", kind, identifier)
			seen[identifier] = true
		}
	}
	assert.Equal(t, []string{"x", "y", "z"}, relations.CorrectedBy)
}

func TestLegalRelations_KindUnknown(t *testing.T) {
	assert.Nil(t, LegalRelations{}.Kind("unknown"))
}
