package sanitise

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	assert.Equal(t, DefaultMaxLen, s.maxLen)
}

func TestCleanStripsMarkup(t *testing.T) {
	s := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "Een dwangsom is een geldbedrag.",
			want:  "Een dwangsom is een geldbedrag.",
		},
		{
			name:  "tags stripped",
			input: "<p>Een <b>dwangsom</b> is een geldbedrag.</p>",
			want:  "Een dwangsom is een geldbedrag.",
		},
		{
			name:  "script contents removed",
			input: "definitie<script>alert('x')</script> van dwangsom",
			want:  "definitie van dwangsom",
		},
		{
			name:  "javascript scheme removed",
			input: "zie javascript:alert(1) voor details",
			want:  "zie voor details",
		},
		{
			name:  "data scheme removed",
			input: "afbeelding data:text/html;base64,AAAA hier",
			want:  "afbeelding hier",
		},
		{
			name:  "whitespace collapsed",
			input: "een   term\n\nmet \t ruimte",
			want:  "een term met ruimte",
		},
		{
			name:  "entities decoded",
			input: "bezwaar &amp; beroep",
			want:  "bezwaar & beroep",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Clean(tt.input))
		})
	}
}

func TestCleanTruncates(t *testing.T) {
	s := NewWithMaxLen(40)

	long := strings.Repeat("woord ", 20)
	got := s.Clean(long)

	assert.LessOrEqual(t, len([]rune(got)), 40)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCleanTruncatesMultiByteAtWordBoundary(t *testing.T) {
	// Accented Dutch words make byte and rune offsets diverge; the
	// word-boundary break must count runes, not bytes.
	s := NewWithMaxLen(40)

	long := strings.Repeat("privé één ", 10)
	got := s.Clean(long)

	runes := []rune(got)
	assert.LessOrEqual(t, len(runes), 40)
	assert.True(t, strings.HasSuffix(got, "..."))

	// The cut lands between words: nothing before the ellipsis is a
	// truncated fragment of either word.
	body := strings.TrimSuffix(got, "...")
	for _, w := range strings.Fields(body) {
		assert.Contains(t, []string{"privé", "één"}, w)
	}
}

func TestCleanIdempotent(t *testing.T) {
	s := NewWithMaxLen(40)

	inputs := []string{
		"<p>Een <b>dwangsom</b> is een geldbedrag.</p>",
		strings.Repeat("herstelsanctie ", 10),
		"bezwaar &amp; beroep",
	}

	for _, in := range inputs {
		once := s.Clean(in)
		twice := s.Clean(once)
		assert.Equal(t, once, twice, "Clean must be idempotent for %q", in)
	}
}
