package services

import (
	"strings"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// JuridicalBoostFactor is the confidence multiplier applied to results
// from authoritative legal sources whose text overlaps the juridical or
// statutory request context.
const JuridicalBoostFactor = 1.1

// JuridicalBooster is the small pre-ranking pass that lifts confidence
// of results already flagged as authoritative legal sources when the
// request context confirms a legal setting.
type JuridicalBooster struct{}

// NewJuridicalBooster creates a new booster.
func NewJuridicalBooster() *JuridicalBooster {
	return &JuridicalBooster{}
}

// Boost returns a copy of the results with boosted confidences. Only
// results with Juridical=true that overlap a juridical or statutory
// context token are touched; confidence stays capped at 1.0.
func (b *JuridicalBooster) Boost(
	items []domain.LookupResult, tokens domain.ContextTokens,
) []domain.LookupResult {
	if len(tokens.Juridical) == 0 && len(tokens.Statutory) == 0 {
		return items
	}

	out := make([]domain.LookupResult, len(items))
	copy(out, items)

	for i := range out {
		if !out[i].Source.Juridical {
			continue
		}
		text := strings.ToLower(resultText(out[i]))
		if !matchesAnyToken(text, tokens.Juridical) && !matchesAnyToken(text, tokens.Statutory) {
			continue
		}

		boosted := out[i].Source.Confidence * JuridicalBoostFactor
		if boosted > 1.0 {
			boosted = 1.0
		}
		logger.Debug("JuridicalBooster: %s confidence %.2f -> %.2f",
			out[i].Source.Name, out[i].Source.Confidence, boosted)
		out[i].Source.Confidence = boosted
	}

	return out
}
