// Package websearch adapts a dependency-injected general web-search
// capability into a provider client. Confidence diminishes with result
// rank; juridical sources are recognised by a domain allowlist.
package websearch

import (
	"context"
	"strings"
	"time"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
	"github.com/vondel-labs/begrip-cli/internal/logger"
	"github.com/vondel-labs/begrip-cli/internal/sanitise"
)

// Ensure Client implements the interface.
var _ driven.ProviderClient = (*Client)(nil)

// Rank-based confidence: the first hit starts at BaseConfidence and
// every following rank loses RankStep, floored at MinConfidence. A
// term appearing in the title adds TitleBoost, capped at 1.0.
const (
	BaseConfidence = 0.9
	RankStep       = 0.08
	MinConfidence  = 0.3
	TitleBoost     = 0.05
)

// juridicalDomains is the allowlist of hosts treated as authoritative
// legal sources.
var juridicalDomains = []string{
	"rechtspraak.nl",
	"overheid.nl",
	"wetten.overheid.nl",
	"officielebekendmakingen.nl",
	"juridischloket.nl",
	"raadvanstate.nl",
}

// juridicalTitleKeywords mark a hit as juridical when its title
// carries clear legal vocabulary.
var juridicalTitleKeywords = []string{
	"wet", "artikel", "jurisprudentie", "uitspraak", "arrest", "vonnis",
}

// Client is the external web-search provider client.
type Client struct {
	cfg       *domain.ProviderConfig
	searcher  driven.WebSearcher
	sanitiser *sanitise.Sanitiser
}

// NewClient creates a web-search client. A nil searcher is allowed:
// the client then always returns no results, never an error.
func NewClient(cfg *domain.ProviderConfig, searcher driven.WebSearcher) *Client {
	return &Client{
		cfg:       cfg,
		searcher:  searcher,
		sanitiser: sanitise.New(),
	}
}

// Name returns the configured provider name.
func (c *Client) Name() string { return c.cfg.Name }

// Config returns the provider configuration.
func (c *Client) Config() *domain.ProviderConfig { return c.cfg }

// Fetch queries the injected searcher. Unavailability and search
// failures both degrade to an empty result set.
func (c *Client) Fetch(
	ctx context.Context,
	req domain.LookupRequest,
	_ domain.ContextTokens,
	sink driven.AttemptSink,
) ([]domain.LookupResult, error) {
	if c.searcher == nil {
		logger.Debug("Websearch %s: no searcher configured", c.cfg.Name)
		return nil, nil
	}

	query := req.Term
	if req.Context != "" {
		query = req.Term + " " + strings.ReplaceAll(req.Context, "|", " ")
	}

	start := time.Now()
	hits, err := c.searcher.Search(ctx, query, req.MaxResults)

	attempt := domain.Attempt{
		Provider: c.cfg.Name,
		Stage:    "web",
		Query:    query,
		Success:  err == nil && len(hits) > 0,
		Duration: time.Since(start),
	}
	if err != nil {
		attempt.Err = err.Error()
		logger.Warn("Websearch %s: %v", c.cfg.Name, err)
	}
	sink.Record(attempt)

	if err != nil || len(hits) == 0 {
		return nil, nil
	}

	results := make([]domain.LookupResult, 0, len(hits))
	for rank, hit := range hits {
		if hit.URL == "" {
			continue
		}

		juridical := isJuridical(hit)
		result := domain.NewLookupResult(req.Term, domain.WebSource{
			Name:       c.cfg.Name,
			URL:        hit.URL,
			Confidence: rankConfidence(req.Term, hit, rank),
			Juridical:  juridical,
			Protocol:   domain.ProtocolExternalSearch,
		})
		result.Definition = c.sanitiser.Clean(hit.Snippet)
		result.Metadata["title"] = hit.Title
		result.Metadata["rank"] = rank

		results = append(results, result)
	}
	return results, nil
}

// rankConfidence computes the diminishing-by-rank confidence with the
// title boost.
func rankConfidence(term string, hit driven.WebHit, rank int) float64 {
	conf := BaseConfidence - RankStep*float64(rank)
	if conf < MinConfidence {
		conf = MinConfidence
	}
	if strings.Contains(strings.ToLower(hit.Title), strings.ToLower(term)) {
		conf += TitleBoost
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// isJuridical reports whether a hit comes from an allowlisted legal
// domain or carries legal vocabulary in its title.
func isJuridical(hit driven.WebHit) bool {
	u := strings.ToLower(hit.URL)
	for _, d := range juridicalDomains {
		if strings.Contains(u, d) {
			return true
		}
	}
	title := strings.ToLower(hit.Title)
	for _, kw := range juridicalTitleKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
