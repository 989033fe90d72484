// Package sru implements the CQL/XML searchRetrieve client for the
// government legal-search endpoints, including the per-call circuit
// breaker and the multi-stage query backoff.
package sru

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
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

// Confidence bands. Provider weighting is applied during ranking, not
// here, so a provider's prior is never counted twice.
const (
	// ConfidenceExactTitle is awarded when the record title equals the term.
	ConfidenceExactTitle = 0.95

	// ConfidencePartialTitle is awarded when the title contains the term.
	ConfidencePartialTitle = 0.85

	// ConfidenceSubjectOnly is awarded when only subject or description match.
	ConfidenceSubjectOnly = 0.70

	// FallbackPenalty multiplies the confidence of results reached only
	// through a heuristic fallback term, reflecting reduced precision.
	FallbackPenalty = 0.95
)

// maximumRecords caps the records requested per searchRetrieve call.
const maximumRecords = 10

// Client is an SRU searchRetrieve provider client.
type Client struct {
	cfg       *domain.ProviderConfig
	httpc     *http.Client
	limiter   *rate.Limiter
	sanitiser *sanitise.Sanitiser
}

// NewClient creates an SRU client for a validated provider config.
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

// Fetch runs the staged query sequence against the endpoint and its
// mirrors, guarded by the per-call circuit breaker. An empty return
// with nil error means nothing was found, which is not a failure.
func (c *Client) Fetch(
	ctx context.Context,
	req domain.LookupRequest,
	tokens domain.ContextTokens,
	sink driven.AttemptSink,
) ([]domain.LookupResult, error) {
	br := newBreaker(c.cfg.BreakerThreshold)
	stages := buildStages(tokens)

	for _, stage := range stages {
		if br.tripped() {
			logger.Info("SRU %s: circuit breaker open, skipping stage %s", c.cfg.Name, stage.name)
			break
		}

		records := c.runStage(ctx, req.Term, stage, sink)
		if len(records) > 0 {
			br.recordHit()
			return c.buildResults(req.Term, records, false), nil
		}
		if br.recordEmpty() {
			logger.Info("SRU %s: circuit breaker tripped after %d empty stages",
				c.cfg.Name, br.consecutiveEmpty)
		}
	}

	// Post-stage heuristic fallback terms, skipped when the breaker is
	// open; their results carry a small confidence penalty.
	if !br.tripped() {
		for _, variant := range fallback.Variants(req.Term) {
			stage := queryStage{name: stageFallback}
			records := c.runStage(ctx, variant, stage, sink)
			if len(records) > 0 {
				return c.buildResults(req.Term, records, true), nil
			}
			if br.recordEmpty() {
				logger.Info("SRU %s: circuit breaker tripped during fallback terms", c.cfg.Name)
				break
			}
		}
	}

	return nil, nil
}

// runStage tries the stage's alternate query forms across the primary
// endpoint and its mirrors, returning the records of the first form
// that yields any. Transport and parse failures are logged per attempt
// and treated as empty.
func (c *Client) runStage(
	ctx context.Context, term string, stage queryStage, sink driven.AttemptSink,
) []record {
	for _, query := range stageQueries(term, stage) {
		for _, endpoint := range c.cfg.Endpoints() {
			start := time.Now()
			records, err := c.searchRetrieve(ctx, endpoint, query)

			attempt := domain.Attempt{
				Provider: c.cfg.Name,
				Stage:    stage.name,
				Query:    query,
				Success:  err == nil && len(records) > 0,
				Duration: time.Since(start),
			}
			if err != nil {
				attempt.Err = err.Error()
			}
			sink.Record(attempt)

			if err != nil {
				logger.Warn("SRU %s: %s stage %s: %v", c.cfg.Name, endpoint, stage.name, err)
				continue
			}
			if len(records) > 0 {
				return records
			}
		}
	}
	return nil
}

// searchRetrieve performs one HTTP searchRetrieve call.
func (c *Client) searchRetrieve(ctx context.Context, endpoint, query string) ([]record, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	params := url.Values{}
	params.Set("operation", "searchRetrieve")
	params.Set("version", c.cfg.ProtocolVersion)
	params.Set("recordSchema", c.cfg.RecordSchema)
	params.Set("maximumRecords", fmt.Sprint(maximumRecords))
	params.Set("startRecord", "1")
	params.Set("query", query)

	reqURL := endpoint + "?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("searchRetrieve: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("searchRetrieve: unexpected status %d", resp.StatusCode)
	}

	return parseResponse(resp.Body, c.cfg.Name)
}

// buildResults converts parsed records into lookup results.
func (c *Client) buildResults(term string, records []record, viaFallback bool) []domain.LookupResult {
	results := make([]domain.LookupResult, 0, len(records))
	for _, rec := range records {
		confidence := c.scoreRecord(term, rec)
		if viaFallback {
			confidence *= FallbackPenalty
		}

		result := domain.NewLookupResult(term, domain.WebSource{
			Name:       c.cfg.Name,
			URL:        recordURL(rec.identifier),
			Confidence: confidence,
			Juridical:  c.cfg.Juridical,
			Protocol:   domain.ProtocolSRU,
		})
		result.Definition = c.sanitiser.Clean(rec.description)
		result.Context = c.sanitiser.Clean(rec.subject)
		result.Metadata["title"] = rec.title
		result.Metadata["identifier"] = rec.identifier
		result.Metadata["record_schema"] = c.cfg.RecordSchema
		if viaFallback {
			result.Metadata["via_fallback_term"] = true
		}

		results = append(results, result)
	}
	return results
}

// scoreRecord assigns the confidence band for one record.
func (c *Client) scoreRecord(term string, rec record) float64 {
	termLower := strings.ToLower(strings.TrimSpace(term))
	titleLower := strings.ToLower(strings.TrimSpace(rec.title))

	switch {
	case titleLower != "" && titleLower == termLower:
		return ConfidenceExactTitle
	case titleLower != "" && strings.Contains(titleLower, termLower):
		return ConfidencePartialTitle
	default:
		return ConfidenceSubjectOnly
	}
}

// recordURL turns a record identifier into a resolvable URL. BWB
// identifiers resolve through wetten.overheid.nl; anything already
// absolute passes through.
func recordURL(identifier string) string {
	switch {
	case identifier == "":
		return ""
	case strings.HasPrefix(identifier, "http://"), strings.HasPrefix(identifier, "https://"):
		return identifier
	case strings.HasPrefix(identifier, "BWB"):
		return "https://wetten.overheid.nl/" + identifier
	default:
		return ""
	}
}
