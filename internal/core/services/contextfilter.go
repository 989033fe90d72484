package services

import (
	"sort"
	"strings"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// Relevance weights per token class. These are empirically tuned
// values; they are kept as named constants rather than re-derived.
const (
	// StatutoryWeight is the relevance contribution of a statutory match.
	StatutoryWeight = 0.5

	// JuridicalWeight is the relevance contribution of a legal-domain match.
	JuridicalWeight = 0.3

	// OrganisationalWeight is the relevance contribution of an
	// organisational match.
	OrganisationalWeight = 0.2

	// MultiClassBonus is added per distinct matched class beyond the
	// first, capped so relevance never exceeds 1.0.
	MultiClassBonus = 0.1

	// DefaultMinRelevance drops results below this relevance when
	// context tokens were supplied.
	DefaultMinRelevance = 0.2
)

// ContextFilter scores ranked results against the classified request
// context and drops the ones that are not relevant to it.
type ContextFilter struct {
	minRelevance float64
}

// NewContextFilter creates a filter with the default relevance floor.
func NewContextFilter() *ContextFilter {
	return &ContextFilter{minRelevance: DefaultMinRelevance}
}

// NewContextFilterWithMin creates a filter with an explicit floor.
func NewContextFilterWithMin(minRelevance float64) *ContextFilter {
	return &ContextFilter{minRelevance: minRelevance}
}

// Filter re-scores ranked results by context relevance. Results below
// the floor are dropped; survivors are ordered by relevance descending,
// then by their prior ranked position. With no context tokens the
// input is returned untouched.
func (f *ContextFilter) Filter(
	ranked []domain.LookupResult, tokens domain.ContextTokens,
) []domain.LookupResult {
	if tokens.Empty() {
		return ranked
	}

	type relevantResult struct {
		result    domain.LookupResult
		relevance float64
		rank      int
	}

	kept := make([]relevantResult, 0, len(ranked))
	for i, item := range ranked {
		rel := Relevance(item, tokens)
		if rel < f.minRelevance {
			logger.Debug("ContextFilter: dropping %s (relevance %.2f < %.2f)",
				item.Source.Name, rel, f.minRelevance)
			continue
		}

		if item.Metadata == nil {
			item.Metadata = make(map[string]any)
		}
		item.Metadata["context_relevance"] = rel

		kept = append(kept, relevantResult{result: item, relevance: rel, rank: i})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].relevance != kept[j].relevance {
			return kept[i].relevance > kept[j].relevance
		}
		return kept[i].rank < kept[j].rank
	})

	out := make([]domain.LookupResult, len(kept))
	for i, rr := range kept {
		out[i] = rr.result
	}
	return out
}

// Relevance computes the context-relevance score of one result:
// 0.5 per statutory match, 0.3 per legal-domain match, 0.2 per
// organisational match, plus 0.1 for every additional distinct matched
// class beyond the first, capped at 1.0.
func Relevance(item domain.LookupResult, tokens domain.ContextTokens) float64 {
	text := strings.ToLower(resultText(item))

	var score float64
	classes := 0

	if matchesAnyToken(text, tokens.Statutory) {
		score += StatutoryWeight
		classes++
	}
	if matchesAnyToken(text, tokens.Juridical) {
		score += JuridicalWeight
		classes++
	}
	if matchesAnyToken(text, tokens.Organisational) {
		score += OrganisationalWeight
		classes++
	}

	if classes > 1 {
		score += MultiClassBonus * float64(classes-1)
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// resultText concatenates the searchable text of a result.
func resultText(item domain.LookupResult) string {
	parts := []string{item.Term, item.Definition, item.Context}
	if t, ok := item.Metadata["title"].(string); ok {
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}

func matchesAnyToken(text string, tokens []string) bool {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
