package mediawiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateScore(t *testing.T) {
	tests := []struct {
		name  string
		term  string
		title string
		want  float64
	}{
		{"exact", "dwangsom", "Dwangsom", ScoreExact},
		{"exact case insensitive", "Dwangsom", "dwangsom", ScoreExact},
		{"prefix", "dwangsom", "Dwangsom (bestuursrecht)", ScorePrefix},
		{"whole word", "dwangsom", "Last onder dwangsom", ScoreWordBoundary},
		{"substring only", "recht", "Bestuursrechtspraak", ScoreSubstring},
		{"no match", "dwangsom", "Waterschap", 0},
		{"empty term", "", "Dwangsom", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, candidateScore(tt.term, tt.title))
		})
	}
}

func TestBestCandidate(t *testing.T) {
	title, score := bestCandidate("dwangsom", []string{
		"Last onder dwangsom",
		"Dwangsom",
		"Bestuursdwang",
	})

	assert.Equal(t, "Dwangsom", title)
	assert.Equal(t, ScoreExact, score)
}

func TestBestCandidateRejectsBelowBar(t *testing.T) {
	// Only a substring match (0.3): below the 0.5 acceptability bar.
	title, score := bestCandidate("recht", []string{"Bestuursrechtspraak"})

	assert.Equal(t, "", title)
	assert.Equal(t, 0.0, score)
}

func TestBestCandidateTieKeepsSearchRank(t *testing.T) {
	// Two whole-word matches: the earlier (better search-ranked)
	// candidate wins.
	title, _ := bestCandidate("dwangsom", []string{
		"Last onder dwangsom",
		"Preventieve dwangsom",
	})

	assert.Equal(t, "Last onder dwangsom", title)
}

func TestBestCandidateEmpty(t *testing.T) {
	title, score := bestCandidate("dwangsom", nil)
	assert.Equal(t, "", title)
	assert.Equal(t, 0.0, score)
}
