package sru

import (
	"fmt"
	"strings"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// Stage names, progressively narrower. Each stage is one named
// query-term variant; the breaker counts stages, not individual query
// forms.
const (
	stageContextFull = "context_full"
	stageJurWet      = "jur_wet"
	stageWetOnly     = "wet_only"
	stageNoCtx       = "no_ctx"
	stageFallback    = "fallback"
)

// queryStage is one ordered query-term variant: the term plus the
// context phrases the stage narrows by.
type queryStage struct {
	name  string
	extra []string
}

// buildStages derives the ordered stage sequence from the classified
// context tokens: full context first, then domain+statute, then
// statute only, then the bare term. Stages whose context set collapses
// to that of a later stage are skipped.
func buildStages(tokens domain.ContextTokens) []queryStage {
	full := concat(tokens.Statutory, tokens.Juridical, tokens.Organisational)
	jurWet := concat(tokens.Statutory, tokens.Juridical)
	wetOnly := concat(tokens.Statutory)

	var stages []queryStage
	if len(full) > len(jurWet) {
		stages = append(stages, queryStage{name: stageContextFull, extra: full})
	}
	if len(jurWet) > len(wetOnly) {
		stages = append(stages, queryStage{name: stageJurWet, extra: jurWet})
	}
	if len(wetOnly) > 0 {
		stages = append(stages, queryStage{name: stageWetOnly, extra: wetOnly})
	}
	stages = append(stages, queryStage{name: stageNoCtx})
	return stages
}

// stageQueries returns the alternate CQL forms tried within one stage:
// exact-field CQL first, then cql.serverChoice, then the hyphenated
// term variant if it differs from the term itself.
func stageQueries(term string, stage queryStage) []string {
	queries := []string{
		exactQuery(term, stage.extra),
		serverChoiceQuery(term, stage.extra),
	}
	if variant := hyphenVariant(term); variant != term {
		queries = append(queries, serverChoiceQuery(variant, stage.extra))
	}
	return queries
}

// exactQuery builds an exact-title CQL clause, narrowed by the stage
// context through serverChoice and-clauses.
func exactQuery(term string, extra []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dt.title exact %s", cqlQuote(term))
	for _, phrase := range extra {
		fmt.Fprintf(&sb, " and cql.serverChoice all %s", cqlQuote(phrase))
	}
	return sb.String()
}

// serverChoiceQuery builds the endpoint-default-index form.
func serverChoiceQuery(term string, extra []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cql.serverChoice all %s", cqlQuote(term))
	for _, phrase := range extra {
		fmt.Fprintf(&sb, " and cql.serverChoice all %s", cqlQuote(phrase))
	}
	return sb.String()
}

// hyphenVariant joins a multi-word term with hyphens, or splits an
// already-hyphenated term. Dutch compound terms appear in statute text
// in both spellings.
func hyphenVariant(term string) string {
	if strings.Contains(term, " ") {
		return strings.ReplaceAll(term, " ", "-")
	}
	if strings.Contains(term, "-") {
		return strings.ReplaceAll(term, "-", " ")
	}
	return term
}

// cqlQuote wraps a phrase in CQL double quotes, stripping embedded
// quotes rather than escaping them; no endpoint accepts escapes
// consistently.
func cqlQuote(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	return `"` + s + `"`
}

func concat(sets ...[]string) []string {
	var out []string
	for _, set := range sets {
		out = append(out, set...)
	}
	return out
}
