package domain

import "strings"

// ContextTokens holds the free-text request context classified into
// three disjoint sets. Classification happens once per request; all
// downstream stages (query building, filtering, boosting) work on the
// classified sets rather than on raw text.
type ContextTokens struct {
	// Organisational tokens name the requesting body (municipality,
	// ministry, water board, ...).
	Organisational []string

	// Juridical tokens name a legal domain (bestuursrecht,
	// omgevingsrecht, ...).
	Juridical []string

	// Statutory tokens name a statutory basis (a wet, besluit or
	// regeling).
	Statutory []string
}

// Empty reports whether no tokens of any class are present.
func (t ContextTokens) Empty() bool {
	return len(t.Organisational) == 0 && len(t.Juridical) == 0 && len(t.Statutory) == 0
}

// statutoryMarkers identify tokens that name a statutory basis.
// Kept as data so the table can be tested and extended without
// touching the classifier.
var statutoryMarkers = []string{
	"wet", "besluit", "regeling", "verordening", "wetboek",
	"awb", "wabo", "bopz", "wmo", "avg", "woo", "wob",
}

// juridicalMarkers identify tokens that name a legal domain.
var juridicalMarkers = []string{
	"recht", "juridisch", "jurisprudentie", "wetgeving",
	"bezwaar", "beroep", "handhaving", "vergunning",
	"aansprakelijk", "privacy", "toezicht",
}

// ClassifyContext splits a "|"-delimited context string into classified
// token sets. Statutory classification wins over juridical, which wins
// over organisational, keeping the sets disjoint.
func ClassifyContext(context string) ContextTokens {
	var tokens ContextTokens
	for _, raw := range strings.Split(context, "|") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)
		switch {
		case matchesAny(lower, statutoryMarkers):
			tokens.Statutory = append(tokens.Statutory, tok)
		case matchesAny(lower, juridicalMarkers):
			tokens.Juridical = append(tokens.Juridical, tok)
		default:
			tokens.Organisational = append(tokens.Organisational, tok)
		}
	}
	return tokens
}

func matchesAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
