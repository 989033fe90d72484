// Package sanitise cleans provider snippets before they enter the
// result pipeline: markup is stripped, dangerous URL schemes removed,
// whitespace collapsed and the text truncated to a bounded length.
package sanitise

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultMaxLen is the truncation bound applied when no explicit
// length is configured.
const DefaultMaxLen = 500

var (
	// whitespaceRe collapses any run of whitespace to a single space.
	whitespaceRe = regexp.MustCompile(`\s+`)

	// schemeRe removes dangerous inline URL schemes that survive tag
	// stripping inside plain text.
	schemeRe = regexp.MustCompile(`(?i)(javascript|data|vbscript):\S*`)
)

// Sanitiser strips unsafe markup and normalises provider snippets.
type Sanitiser struct {
	policy *bluemonday.Policy
	maxLen int
}

// New creates a sanitiser with the default truncation bound.
func New() *Sanitiser {
	return NewWithMaxLen(DefaultMaxLen)
}

// NewWithMaxLen creates a sanitiser truncating to maxLen runes.
func NewWithMaxLen(maxLen int) *Sanitiser {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Sanitiser{
		policy: bluemonday.StrictPolicy(),
		maxLen: maxLen,
	}
}

// Clean sanitises a snippet. The operation is idempotent.
func (s *Sanitiser) Clean(text string) string {
	if text == "" {
		return ""
	}

	// Strip all markup, then decode the entities bluemonday re-escapes.
	out := s.policy.Sanitize(text)
	out = html.UnescapeString(out)

	out = schemeRe.ReplaceAllString(out, "")
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)

	return truncateRunes(out, s.maxLen)
}

// truncateRunes cuts text at a rune boundary, appending an ellipsis
// when anything was removed. The result never exceeds maxLen runes,
// ellipsis included, so repeated cleaning is a no-op. It prefers to
// break at the last space inside the bound so words are not cut in
// half.
func truncateRunes(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := runes[:maxLen-3]
	for i := len(cut) - 1; i > maxLen/2; i-- {
		if cut[i] == ' ' {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimSpace(string(cut)) + "..."
}
