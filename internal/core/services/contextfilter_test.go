package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

func rankedResult(name, definition string) domain.LookupResult {
	r := domain.NewLookupResult("mandaat", domain.WebSource{
		Name: name, URL: "https://" + name + ".example.org", Confidence: 0.8})
	r.Definition = definition
	return r
}

func TestFilterPassThroughWithoutContext(t *testing.T) {
	// Scenario: no context means no filtering and no reordering.
	filter := NewContextFilter()

	ranked := []domain.LookupResult{
		rankedResult("p1", "eerste definitie"),
		rankedResult("p2", "tweede definitie"),
	}

	out := filter.Filter(ranked, domain.ContextTokens{})

	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].Source.Name)
	assert.Equal(t, "p2", out[1].Source.Name)
	_, scored := out[0].Metadata["context_relevance"]
	assert.False(t, scored, "pass-through must not attach relevance scores")
}

func TestRelevanceWeights(t *testing.T) {
	tokens := domain.ContextTokens{
		Organisational: []string{"gemeente utrecht"},
		Juridical:      []string{"bestuursrecht"},
		Statutory:      []string{"awb"},
	}

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"statutory only", "artikel 5:32 Awb regelt de last onder dwangsom", 0.5},
		{"juridical only", "een begrip uit het bestuursrecht", 0.3},
		{"organisational only", "beleid van gemeente utrecht", 0.2},
		{"statutory plus juridical", "de Awb is de kern van het bestuursrecht", 0.9},
		{"all three classes", "gemeente utrecht past de awb toe in het bestuursrecht", 1.0},
		{"no match", "iets geheel anders", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := rankedResult("p", tt.text)
			assert.InDelta(t, tt.want, Relevance(item, tokens), 1e-9)
		})
	}
}

func TestRelevanceCappedAtOne(t *testing.T) {
	// 0.5+0.3+0.2 plus two bonuses would be 1.2 uncapped.
	tokens := domain.ContextTokens{
		Organisational: []string{"gemeente"},
		Juridical:      []string{"handhaving"},
		Statutory:      []string{"omgevingswet"},
	}
	item := rankedResult("p", "handhaving door de gemeente onder de omgevingswet")
	assert.Equal(t, 1.0, Relevance(item, tokens))
}

func TestFilterDropsBelowFloorAndReorders(t *testing.T) {
	filter := NewContextFilter()
	tokens := domain.ContextTokens{
		Juridical: []string{"bestuursrecht"},
		Statutory: []string{"awb"},
	}

	ranked := []domain.LookupResult{
		rankedResult("alleen-juridisch", "een leerstuk uit het bestuursrecht"),
		rankedResult("wettelijk", "gedefinieerd in de awb"),
		rankedResult("irrelevant", "heeft hier niets mee te maken"),
	}

	out := filter.Filter(ranked, tokens)

	require.Len(t, out, 2)
	// 0.5 statutory outranks 0.3 juridical despite the prior order.
	assert.Equal(t, "wettelijk", out[0].Source.Name)
	assert.Equal(t, "alleen-juridisch", out[1].Source.Name)
	assert.InDelta(t, 0.5, out[0].Metadata["context_relevance"].(float64), 1e-9)
}

func TestFilterRelevanceTiePreservesPriorRank(t *testing.T) {
	filter := NewContextFilter()
	tokens := domain.ContextTokens{Juridical: []string{"bezwaar"}}

	ranked := []domain.LookupResult{
		rankedResult("eerst", "bezwaar maken tegen een besluit"),
		rankedResult("tweede", "de termijn voor bezwaar"),
	}

	out := filter.Filter(ranked, tokens)

	require.Len(t, out, 2)
	assert.Equal(t, "eerst", out[0].Source.Name)
	assert.Equal(t, "tweede", out[1].Source.Name)
}

func TestFilterRelevanceMonotonicInMatchedClasses(t *testing.T) {
	// Adding a matched class never lowers the relevance score.
	tokens := domain.ContextTokens{
		Organisational: []string{"provincie"},
		Juridical:      []string{"toezicht"},
		Statutory:      []string{"gemeentewet"},
	}

	one := Relevance(rankedResult("p", "toezicht"), tokens)
	two := Relevance(rankedResult("p", "toezicht door de provincie"), tokens)
	three := Relevance(rankedResult("p", "toezicht door de provincie op grond van de gemeentewet"), tokens)

	assert.Greater(t, two, one)
	assert.Greater(t, three, two)
}

func TestFilterMatchesTitleMetadata(t *testing.T) {
	filter := NewContextFilter()
	tokens := domain.ContextTokens{Juridical: []string{"handhaving"}}

	item := rankedResult("p", "tekst zonder treffer")
	item.Metadata["title"] = "Handhaving in de praktijk"

	out := filter.Filter([]domain.LookupResult{item}, tokens)
	require.Len(t, out, 1)
}
