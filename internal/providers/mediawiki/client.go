// Package mediawiki implements the encyclopedic provider client over
// the MediaWiki search and summary APIs (Wikipedia, Wiktionary).
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
	"github.com/vondel-labs/begrip-cli/internal/logger"
	"github.com/vondel-labs/begrip-cli/internal/providers/fallback"
	"github.com/vondel-labs/begrip-cli/internal/sanitise"
)

// Ensure Client implements the interface.
var _ driven.ProviderClient = (*Client)(nil)

// searchLimit is the number of ranked title candidates fetched per
// search.
const searchLimit = 5

// maxBodyBytes bounds response bodies read into memory.
const maxBodyBytes = 1 << 20

// Stage names used in the attempt log.
const (
	stageSearch   = "search"
	stageFallback = "fallback"
)

// Client is a MediaWiki provider client. It searches for ranked title
// candidates, accepts the best one above the acceptability bar, and
// fetches its summary extract.
type Client struct {
	cfg       *domain.ProviderConfig
	httpc     *http.Client
	limiter   *rate.Limiter
	sanitiser *sanitise.Sanitiser
}

// NewClient creates a MediaWiki client for a validated provider config.
// BaseURL is the wiki origin, e.g. "https://nl.wikipedia.org".
func NewClient(cfg *domain.ProviderConfig) *Client {
	c := &Client{
		cfg:       cfg,
		httpc:     &http.Client{Timeout: domain.DefaultTimeout},
		sanitiser: sanitise.New(),
	}
	if cfg.RatePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return c
}

// Name returns the configured provider name.
func (c *Client) Name() string { return c.cfg.Name }

// Config returns the provider configuration.
func (c *Client) Config() *domain.ProviderConfig { return c.cfg }

// Fetch looks the term up, trying the domain-specific fallback
// variants when the primary term yields no acceptable page. An empty
// return with nil error means nothing acceptable was found.
func (c *Client) Fetch(
	ctx context.Context,
	req domain.LookupRequest,
	_ domain.ContextTokens,
	sink driven.AttemptSink,
) ([]domain.LookupResult, error) {
	if result, ok := c.lookupTerm(ctx, req.Term, stageSearch, sink); ok {
		return []domain.LookupResult{result}, nil
	}

	for _, variant := range fallback.Variants(req.Term) {
		if result, ok := c.lookupTerm(ctx, variant, stageFallback, sink); ok {
			// The result keeps the original request term; the variant
			// is provenance.
			result.Term = req.Term
			result.Metadata["fallback_term"] = variant
			return []domain.LookupResult{result}, nil
		}
	}

	return nil, nil
}

// lookupTerm runs one search-then-fetch round for a term variant.
func (c *Client) lookupTerm(
	ctx context.Context, term, stage string, sink driven.AttemptSink,
) (domain.LookupResult, bool) {
	start := time.Now()

	result, err := c.searchAndFetch(ctx, term)

	attempt := domain.Attempt{
		Provider: c.cfg.Name,
		Stage:    stage,
		Query:    term,
		Success:  err == nil && result.Success,
		Duration: time.Since(start),
	}
	if err != nil {
		attempt.Err = err.Error()
		logger.Warn("MediaWiki %s: %q: %v", c.cfg.Name, term, err)
	}
	sink.Record(attempt)

	return result, err == nil && result.Success
}

// searchAndFetch finds the best title candidate and fetches its
// summary. A not-found is reported as an unsuccessful result with a
// nil error.
func (c *Client) searchAndFetch(ctx context.Context, term string) (domain.LookupResult, error) {
	candidates, err := c.search(ctx, term)
	if err != nil {
		return domain.LookupResult{}, err
	}

	title, score := bestCandidate(term, candidates)
	if title == "" {
		logger.Debug("MediaWiki %s: no acceptable candidate for %q", c.cfg.Name, term)
		return domain.LookupResult{}, nil
	}

	summary, err := c.summary(ctx, title)
	if err != nil {
		return domain.LookupResult{}, err
	}
	if summary == nil {
		// 404 on the summary endpoint is a normal not-found.
		return domain.LookupResult{}, nil
	}
	if summary.Type == "disambiguation" {
		logger.Debug("MediaWiki %s: rejecting disambiguation page %q", c.cfg.Name, title)
		return domain.LookupResult{}, nil
	}

	result := domain.NewLookupResult(term, domain.WebSource{
		Name:       c.cfg.Name,
		URL:        summary.pageURL(c.cfg.BaseURL, title),
		Confidence: score,
		Juridical:  c.cfg.Juridical,
		Protocol:   domain.ProtocolMediaWiki,
	})
	result.Definition = c.sanitiser.Clean(summary.Extract)
	result.Metadata["title"] = summary.Title
	result.Metadata["match_score"] = score

	return result, nil
}

// searchResponse mirrors the action API search envelope.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// search returns the ranked title candidates for a term.
func (c *Client) search(ctx context.Context, term string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srlimit", fmt.Sprint(searchLimit))
	params.Set("format", "json")

	body, status, err := c.get(ctx, c.cfg.BaseURL+"/w/api.php?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", status)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	titles := make([]string, 0, len(parsed.Query.Search))
	for _, hit := range parsed.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// summaryResponse mirrors the REST summary endpoint payload.
type summaryResponse struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// pageURL returns the canonical page URL, built from the title when
// the payload omits one.
func (s *summaryResponse) pageURL(baseURL, title string) string {
	if s.ContentURLs.Desktop.Page != "" {
		return s.ContentURLs.Desktop.Page
	}
	return baseURL + "/wiki/" + url.PathEscape(title)
}

// summary fetches the short extract for a page title. A nil response
// with nil error means the page does not exist.
func (c *Client) summary(ctx context.Context, title string) (*summaryResponse, error) {
	body, status, err := c.get(ctx, c.cfg.BaseURL+"/api/rest_v1/page/summary/"+url.PathEscape(title))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("summary: unexpected status %d", status)
	}

	var parsed summaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("summary: decode: %w", err)
	}
	return &parsed, nil
}

// get performs one rate-limited GET and returns the body and status.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
