// Package caselaw implements the case-law open-data provider client.
// The upstream API has no full-text search; lookups are keyed strictly
// by European Case Law Identifier (ECLI). A term without an ECLI
// yields no result and no request.
package caselaw

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
	"github.com/vondel-labs/begrip-cli/internal/logger"
	"github.com/vondel-labs/begrip-cli/internal/providers/dcxml"
	"github.com/vondel-labs/begrip-cli/internal/sanitise"
)

// Ensure Client implements the interface.
var _ driven.ProviderClient = (*Client)(nil)

// Confidence is the fixed confidence of a keyed case-law hit. The
// identifier match is exact, so the band is high; provider weighting
// still applies during ranking.
const Confidence = 0.9

// ecliPattern matches a European Case Law Identifier inside a term.
var ecliPattern = regexp.MustCompile(`\bECLI:[A-Z]{2}:[A-Z0-9]{1,7}:\d{4}:[A-Z0-9.]{1,25}\b`)

// Client is the ECLI-keyed case-law provider client.
type Client struct {
	cfg       *domain.ProviderConfig
	httpc     *http.Client
	limiter   *rate.Limiter
	sanitiser *sanitise.Sanitiser
}

// NewClient creates a case-law client for a validated provider config.
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

// ExtractECLI returns the first ECLI found in the term, or empty.
func ExtractECLI(term string) string {
	return ecliPattern.FindString(strings.ToUpper(term))
}

// Fetch performs the keyed metadata lookup. Without an ECLI in the
// term it returns immediately: no result, no error, no attempt.
func (c *Client) Fetch(
	ctx context.Context,
	req domain.LookupRequest,
	_ domain.ContextTokens,
	sink driven.AttemptSink,
) ([]domain.LookupResult, error) {
	ecli := ExtractECLI(req.Term)
	if ecli == "" {
		logger.Debug("Caselaw %s: no ECLI in %q, skipping", c.cfg.Name, req.Term)
		return nil, nil
	}

	start := time.Now()
	result, err := c.fetchMetadata(ctx, req.Term, ecli)

	attempt := domain.Attempt{
		Provider: c.cfg.Name,
		Stage:    "ecli",
		Query:    ecli,
		Success:  err == nil && result.Success,
		Duration: time.Since(start),
	}
	if err != nil {
		attempt.Err = err.Error()
	}
	sink.Record(attempt)

	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, nil
	}
	return []domain.LookupResult{result}, nil
}

// fetchMetadata retrieves the structured case metadata and builds a
// synthetic snippet from it. An unknown ECLI is a not-found, not an
// error.
func (c *Client) fetchMetadata(ctx context.Context, term, ecli string) (domain.LookupResult, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.LookupResult{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{}
	params.Set("id", ecli)
	params.Set("return", "META")
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		return domain.LookupResult{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return domain.LookupResult{}, fmt.Errorf("fetch metadata: unexpected status %d", resp.StatusCode)
	}

	root, err := dcxml.Parse(resp.Body)
	if err != nil {
		return domain.LookupResult{}, fmt.Errorf("parse metadata: %w", err)
	}

	title := root.ValueAny("title")
	creator := root.ValueAny("creator", "instantie")
	date := root.ValueAny("date", "uitspraakdatum")
	subject := root.ValueAny("subject", "rechtsgebied")
	abstract := root.ValueAny("abstract", "inhoudsindicatie", "description")

	if title == "" && abstract == "" {
		return domain.LookupResult{}, nil
	}

	result := domain.NewLookupResult(term, domain.WebSource{
		Name:       c.cfg.Name,
		URL:        "https://deeplink.rechtspraak.nl/uitspraak?id=" + url.QueryEscape(ecli),
		Confidence: Confidence,
		Juridical:  true,
		Protocol:   domain.ProtocolRest,
	})
	result.Definition = c.sanitiser.Clean(abstract)
	result.Context = c.sanitiser.Clean(syntheticSnippet(ecli, creator, date, subject))
	result.Metadata["title"] = title
	result.Metadata["ecli"] = ecli
	if subject != "" {
		result.Metadata["rechtsgebied"] = subject
	}

	return result, nil
}

// syntheticSnippet assembles the short human-readable case line shown
// alongside the abstract.
func syntheticSnippet(ecli, creator, date, subject string) string {
	parts := []string{ecli}
	for _, p := range []string{creator, date, subject} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
