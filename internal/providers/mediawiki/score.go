package mediawiki

import (
	"regexp"
	"strings"
)

// Candidate match scores. A candidate below MinAcceptableScore is
// rejected so low-quality encyclopedic hits never enter the pipeline.
const (
	// ScoreExact is an exact case-insensitive title match.
	ScoreExact = 1.0

	// ScorePrefix is a title starting with the term.
	ScorePrefix = 0.8

	// ScoreWordBoundary is a title containing the term as a whole word.
	ScoreWordBoundary = 0.6

	// ScoreSubstring is a bare substring match.
	ScoreSubstring = 0.3

	// MinAcceptableScore is the acceptability bar.
	MinAcceptableScore = 0.5
)

// bestCandidate scores the ranked title candidates and returns the
// best acceptable one with its score, or an empty title when none
// clears the bar. The search ranking breaks score ties: earlier
// candidates win.
func bestCandidate(term string, candidates []string) (string, float64) {
	var (
		bestTitle string
		bestScore float64
	)
	for _, title := range candidates {
		score := candidateScore(term, title)
		if score > bestScore {
			bestTitle, bestScore = title, score
		}
	}
	if bestScore < MinAcceptableScore {
		return "", 0
	}
	return bestTitle, bestScore
}

// candidateScore rates how well a page title matches the term.
func candidateScore(term, title string) float64 {
	t := strings.ToLower(strings.TrimSpace(term))
	ti := strings.ToLower(strings.TrimSpace(title))
	if t == "" || ti == "" {
		return 0
	}

	switch {
	case ti == t:
		return ScoreExact
	case strings.HasPrefix(ti, t):
		return ScorePrefix
	case wholeWordRe(t).MatchString(ti):
		return ScoreWordBoundary
	case strings.Contains(ti, t):
		return ScoreSubstring
	}
	return 0
}

// wholeWordRe builds a whole-word matcher for the term.
func wholeWordRe(term string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `($|[^\p{L}\p{N}])`)
}
