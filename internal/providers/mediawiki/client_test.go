package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// attemptRecorder is a test AttemptSink.
type attemptRecorder struct {
	attempts []domain.Attempt
}

func (r *attemptRecorder) Record(a domain.Attempt) {
	r.attempts = append(r.attempts, a)
}

func testConfig(baseURL string) *domain.ProviderConfig {
	cfg := &domain.ProviderConfig{
		Name:     "wikipedia_nl",
		BaseURL:  baseURL,
		Protocol: domain.ProtocolMediaWiki,
		Weight:   0.7,
		Enabled:  true,
	}
	cfg.ApplyDefaults()
	return cfg
}

// wikiServer fakes the action API search and the REST summary
// endpoint. summaries maps page titles to their summary payloads.
func wikiServer(t *testing.T, searchHits map[string][]string, summaries map[string]map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("srsearch")
		hits := searchHits[term]

		type hit struct {
			Title string `json:"title"`
		}
		payload := map[string]any{"query": map[string]any{"search": []hit{}}}
		var typed []hit
		for _, h := range hits {
			typed = append(typed, hit{Title: h})
		}
		if typed != nil {
			payload = map[string]any{"query": map[string]any{"search": typed}}
		}
		json.NewEncoder(w).Encode(payload) //nolint:errcheck
	})
	mux.HandleFunc("/api/rest_v1/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/api/rest_v1/page/summary/")
		summary, ok := summaries[title]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(summary) //nolint:errcheck
	})

	return httptest.NewServer(mux)
}

func TestFetchHappyPath(t *testing.T) {
	srv := wikiServer(t,
		map[string][]string{"dwangsom": {"Dwangsom", "Bestuursdwang"}},
		map[string]map[string]any{
			"Dwangsom": {
				"title":   "Dwangsom",
				"type":    "standard",
				"extract": "Een dwangsom is een geldbedrag dat verbeurd wordt.",
			},
		})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rec := &attemptRecorder{}

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, rec)

	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "dwangsom", got.Term)
	assert.Equal(t, ScoreExact, got.Source.Confidence)
	assert.Equal(t, domain.ProtocolMediaWiki, got.Source.Protocol)
	assert.Contains(t, got.Source.URL, "/wiki/Dwangsom")
	assert.Equal(t, "Een dwangsom is een geldbedrag dat verbeurd wordt.", got.Definition)
	assert.Equal(t, "Dwangsom", got.Metadata["title"])

	require.Len(t, rec.attempts, 1)
	assert.Equal(t, stageSearch, rec.attempts[0].Stage)
	assert.True(t, rec.attempts[0].Success)
}

func TestFetchRejectsDisambiguation(t *testing.T) {
	srv := wikiServer(t,
		map[string][]string{"dwangsom": {"Dwangsom"}},
		map[string]map[string]any{
			"Dwangsom": {"title": "Dwangsom", "type": "disambiguation", "extract": "may refer to"},
		})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, &attemptRecorder{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchSummary404TriesFallbacks(t *testing.T) {
	// The primary term finds a candidate whose summary 404s; the
	// synonym fallback term succeeds.
	srv := wikiServer(t,
		map[string][]string{
			"dwangsom":            {"Dwangsom"},
			"last onder dwangsom": {"Last onder dwangsom"},
		},
		map[string]map[string]any{
			"Last onder dwangsom": {
				"title":   "Last onder dwangsom",
				"type":    "standard",
				"extract": "Een herstelsanctie uit de Awb.",
			},
		})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rec := &attemptRecorder{}

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, rec)

	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "dwangsom", got.Term, "result keeps the original request term")
	assert.Equal(t, "last onder dwangsom", got.Metadata["fallback_term"])

	require.GreaterOrEqual(t, len(rec.attempts), 2)
	assert.Equal(t, stageSearch, rec.attempts[0].Stage)
	assert.False(t, rec.attempts[0].Success)
	assert.Equal(t, stageFallback, rec.attempts[1].Stage)
	assert.True(t, rec.attempts[1].Success)
}

func TestFetchNoAcceptableCandidate(t *testing.T) {
	srv := wikiServer(t,
		map[string][]string{"dwangsom": {"Waterschap", "Provincie"}},
		nil)
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rec := &attemptRecorder{}

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, rec)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotEmpty(t, rec.attempts)
}

func TestFetchTransportErrorRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	rec := &attemptRecorder{}

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, rec)

	require.NoError(t, err)
	assert.Empty(t, results)
	require.NotEmpty(t, rec.attempts)
	assert.NotEmpty(t, rec.attempts[0].Err)
}

func TestFetchSanitisesExtract(t *testing.T) {
	srv := wikiServer(t,
		map[string][]string{"dwangsom": {"Dwangsom"}},
		map[string]map[string]any{
			"Dwangsom": {
				"title":   "Dwangsom",
				"type":    "standard",
				"extract": "<p>Een <b>dwangsom</b> is   een geldbedrag.</p>",
			},
		})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, &attemptRecorder{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Een dwangsom is een geldbedrag.", results[0].Definition)
}

func TestScoreMetadataRoundTrips(t *testing.T) {
	// match_score survives JSON encoding of the metadata map.
	srv := wikiServer(t,
		map[string][]string{"dwangsom": {"Dwangsom"}},
		map[string]map[string]any{
			"Dwangsom": {"title": "Dwangsom", "type": "standard", "extract": "x"},
		})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))

	results, err := client.Fetch(context.Background(),
		domain.LookupRequest{Term: "dwangsom"}, domain.ContextTokens{}, &attemptRecorder{})
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := json.Marshal(results[0].Metadata)
	require.NoError(t, err)
	assert.Contains(t, string(data), fmt.Sprintf(`"match_score":%v`, ScoreExact))
}
