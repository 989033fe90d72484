// Package fallback derives alternate term variants tried when a
// provider finds nothing under the primary term. The tables are data,
// not logic, so they can be tested and extended without touching the
// provider clients.
package fallback

import "strings"

// synonyms maps lowercased terms to their legal-domain expansions.
// Ordered: more precise expansions first.
var synonyms = map[string][]string{
	"dwangsom":        {"last onder dwangsom"},
	"bestuursdwang":   {"last onder bestuursdwang"},
	"awb":             {"algemene wet bestuursrecht"},
	"avg":             {"algemene verordening gegevensbescherming"},
	"woo":             {"wet open overheid"},
	"wob":             {"wet openbaarheid van bestuur"},
	"bopa":            {"buitenplanse omgevingsplanactiviteit"},
	"vth":             {"vergunningverlening toezicht en handhaving"},
	"apv":             {"algemene plaatselijke verordening"},
	"bibob":           {"wet bevordering integriteitsbeoordelingen"},
	"zienswijze":      {"zienswijzeprocedure"},
	"gedoogbesluit":   {"gedoogbeschikking"},
	"mandaat":         {"mandaatbesluit"},
	"beleidsregel":    {"beleidsregels"},
	"hardheidsclausule": {"afwijkingsbevoegdheid"},
}

// strippableSuffixes are morphological endings removed to reach the
// stem form. Longest first so "-ingen" wins over "-en".
var strippableSuffixes = []string{"ingen", "heden", "ing", "en", "s"}

// minStemLen guards against stripping short words to nothing useful.
const minStemLen = 4

// Variants returns the ordered fallback variants for a term:
// hyphenation toggle, synonym expansions, then suffix-stripped stems.
// The primary term itself is never included; duplicates are removed.
func Variants(term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	lower := strings.ToLower(term)

	var variants []string

	if hv := hyphenToggle(term); hv != "" {
		variants = append(variants, hv)
	}
	variants = append(variants, synonyms[lower]...)
	if stem := stripSuffix(lower); stem != "" {
		variants = append(variants, stem)
	}

	seen := map[string]bool{lower: true}
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// hyphenToggle swaps between spaced and hyphenated compound spelling,
// or returns empty when the term is a single unhyphenated word.
func hyphenToggle(term string) string {
	switch {
	case strings.Contains(term, " "):
		return strings.ReplaceAll(term, " ", "-")
	case strings.Contains(term, "-"):
		return strings.ReplaceAll(term, "-", " ")
	}
	return ""
}

// stripSuffix removes the longest matching morphological suffix, or
// returns empty when no suffix applies or the stem would be too short.
func stripSuffix(term string) string {
	for _, suffix := range strippableSuffixes {
		if strings.HasSuffix(term, suffix) {
			stem := strings.TrimSuffix(term, suffix)
			if len(stem) >= minStemLen {
				return stem
			}
		}
	}
	return ""
}
