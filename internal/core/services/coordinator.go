package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driving"
	"github.com/vondel-labs/begrip-cli/internal/logger"
)

// Ensure LookupCoordinator implements the interface.
var _ driving.LookupService = (*LookupCoordinator)(nil)

// legalRouteKeywords route a request to the juridical-first provider
// order when present in the term or context. Kept as data so the table
// can be tested and extended independently of the routing logic.
var legalRouteKeywords = []string{
	"wet", "artikel", "besluit", "regeling", "verordening", "jurisprudentie",
	"vonnis", "arrest", "ecli", "rechtbank", "gerechtshof", "raad van state",
	"bezwaar", "beroep", "handhaving", "juridisch", "recht",
}

// LookupCoordinator fans a lookup request out over the enabled
// providers, tolerates individual provider failure, and runs the
// boost, rank and filter pipeline over the collected evidence.
type LookupCoordinator struct {
	clients []driven.ProviderClient
	booster *JuridicalBooster
	ranking *RankingEngine
	filter  *ContextFilter
	cache   driven.LookupCache // optional
}

// NewLookupCoordinator creates a coordinator over the given provider
// clients. The cache is optional and may be nil.
func NewLookupCoordinator(
	clients []driven.ProviderClient,
	booster *JuridicalBooster,
	ranking *RankingEngine,
	filter *ContextFilter,
	cache driven.LookupCache,
) *LookupCoordinator {
	return &LookupCoordinator{
		clients: clients,
		booster: booster,
		ranking: ranking,
		filter:  filter,
		cache:   cache,
	}
}

// Providers returns the configuration of every known provider.
func (c *LookupCoordinator) Providers() []*domain.ProviderConfig {
	out := make([]*domain.ProviderConfig, len(c.clients))
	for i, client := range c.clients {
		out[i] = client.Config()
	}
	return out
}

// Lookup aggregates definitional evidence for the request term.
// Provider errors and timeouts are logged and excluded; they never
// fail the overall call. The returned error is non-nil only for
// invalid input.
func (c *LookupCoordinator) Lookup(
	ctx context.Context, req domain.LookupRequest,
) (*domain.LookupReport, error) {
	if strings.TrimSpace(req.Term) == "" {
		return nil, fmt.Errorf("lookup term: %w", domain.ErrInvalidInput)
	}
	req = req.Normalised()

	report := &domain.LookupReport{RequestID: uuid.NewString()}

	logger.Section("Federated Lookup")
	logger.Info("Term: %q (request %s)", req.Term, report.RequestID)

	tokens := domain.ClassifyContext(req.Context)
	logger.Debug("Context tokens: org=%d jur=%d wet=%d",
		len(tokens.Organisational), len(tokens.Juridical), len(tokens.Statutory))

	if cached, ok := c.cachedResults(ctx, req); ok {
		logger.Info("Cache hit: %d results", len(cached))
		report.Results = cached
		return report, nil
	}

	selected := c.selectProviders(req, tokens)
	logger.Debug("Selected providers: %d", len(selected))

	raw := c.fanOut(ctx, req, tokens, selected, report)
	logger.Debug("Collected %d raw results from %d providers", len(raw), len(selected))

	results := c.pipeline(raw, tokens)

	if len(results) > req.MaxResults {
		results = results[:req.MaxResults]
	}
	report.Results = results

	c.storeResults(ctx, req, results)

	logger.Info("Final results: %d", len(results))
	return report, nil
}

// selectProviders picks and orders the providers for a request.
// An explicit source list wins, minus disabled providers; otherwise a
// keyword heuristic routes to a juridical-first or general-first order.
func (c *LookupCoordinator) selectProviders(
	req domain.LookupRequest, tokens domain.ContextTokens,
) []driven.ProviderClient {
	byName := make(map[string]driven.ProviderClient, len(c.clients))
	for _, client := range c.clients {
		byName[client.Name()] = client
	}

	if len(req.Sources) > 0 {
		var out []driven.ProviderClient
		for _, name := range req.Sources {
			client, ok := byName[name]
			if !ok {
				logger.Warn("Unknown provider requested: %q", name)
				continue
			}
			if !client.Config().Enabled {
				logger.Debug("Provider %q requested but disabled", name)
				continue
			}
			out = append(out, client)
		}
		return out
	}

	var juridical, general []driven.ProviderClient
	for _, client := range c.clients {
		if !client.Config().Enabled {
			continue
		}
		if client.Config().Juridical {
			juridical = append(juridical, client)
		} else {
			general = append(general, client)
		}
	}

	if c.isLegalRequest(req) {
		logger.Debug("Routing: juridical-first")
		return append(juridical, general...)
	}
	logger.Debug("Routing: general-first")
	return append(general, juridical...)
}

// isLegalRequest reports whether the term or context carries legal
// keywords.
func (c *LookupCoordinator) isLegalRequest(req domain.LookupRequest) bool {
	haystack := strings.ToLower(req.Term + " " + req.Context)
	for _, kw := range legalRouteKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// fanOut queries every selected provider concurrently and collects the
// successful non-empty results. Each provider task is bounded by the
// per-provider timeout; an erroring or timed-out provider is logged
// and excluded. If the caller's context expires mid-flight, whatever
// has completed so far is returned.
func (c *LookupCoordinator) fanOut(
	ctx context.Context,
	req domain.LookupRequest,
	tokens domain.ContextTokens,
	selected []driven.ProviderClient,
	report *domain.LookupReport,
) []domain.LookupResult {
	var (
		mu       sync.Mutex
		results  []domain.LookupResult
		attempts []domain.Attempt
		sealed   bool
	)

	// Attempts accumulate locally and are handed to the report in one
	// snapshot at return. Abandoned providers that unwind later find
	// the log sealed, so the caller never reads a slice still being
	// appended to.
	sink := driven.AttemptSinkFunc(func(a domain.Attempt) {
		mu.Lock()
		defer mu.Unlock()
		if sealed {
			logger.Debug("Provider %s reported an attempt after lookup returned", a.Provider)
			return
		}
		attempts = append(attempts, a)
	})

	g := new(errgroup.Group)
	for _, client := range selected {
		g.Go(func() error {
			start := time.Now()

			fetchCtx, cancel := context.WithTimeout(ctx, req.Timeout)
			defer cancel()

			fetched, err := client.Fetch(fetchCtx, req, tokens, sink)
			if err != nil {
				// Transport and timeout failures never abort the
				// overall request.
				logger.Warn("Provider %s failed after %v: %v",
					client.Name(), time.Since(start), err)
				sink.Record(domain.Attempt{
					Provider: client.Name(),
					Query:    req.Term,
					Duration: time.Since(start),
					Err:      err.Error(),
				})
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, r := range fetched {
				if r.Success {
					results = append(results, r)
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		g.Wait() //nolint:errcheck // provider tasks never return errors
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Abandon in-flight providers; their contexts are cancelled
		// and they drain in the background.
		logger.Warn("Lookup cancelled, proceeding with completed providers: %v", ctx.Err())
	}

	mu.Lock()
	defer mu.Unlock()
	sealed = true
	report.Attempts = append(report.Attempts, attempts...)
	out := make([]domain.LookupResult, len(results))
	copy(out, results)
	return out
}

// pipeline runs boost, rank and filter over the raw results. A failure
// inside the pipeline is caught here once; the fallback is a plain
// confidence sort so the caller always receives a usable list.
func (c *LookupCoordinator) pipeline(
	raw []domain.LookupResult, tokens domain.ContextTokens,
) (results []domain.LookupResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Ranking pipeline failed: %v, falling back to confidence sort", r)
			results = fallbackSort(raw)
		}
	}()

	weights := make(map[string]float64, len(c.clients))
	for _, client := range c.clients {
		weights[client.Name()] = client.Config().Weight
	}

	boosted := c.booster.Boost(raw, tokens)
	ranked := c.ranking.RankAndDedup(boosted, weights)
	return c.filter.Filter(ranked, tokens)
}

// fallbackSort orders raw successful results by confidence descending
// with a name tie-break, used when the ranking pipeline fails.
func fallbackSort(raw []domain.LookupResult) []domain.LookupResult {
	out := make([]domain.LookupResult, 0, len(raw))
	for _, r := range raw {
		if r.Success {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Source.Confidence != out[j].Source.Confidence {
			return out[i].Source.Confidence > out[j].Source.Confidence
		}
		return out[i].Source.Name < out[j].Source.Name
	})
	return out
}

// cachedResults consults the optional lookup cache. Errors degrade to
// a miss.
func (c *LookupCoordinator) cachedResults(
	ctx context.Context, req domain.LookupRequest,
) ([]domain.LookupResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	results, ok, err := c.cache.Get(ctx, cacheKey(req))
	if err != nil {
		logger.Debug("Cache get failed: %v", err)
		return nil, false
	}
	if ok && len(results) > req.MaxResults {
		results = results[:req.MaxResults]
	}
	return results, ok && len(results) > 0
}

// storeResults fills the optional lookup cache after a successful
// non-empty lookup.
func (c *LookupCoordinator) storeResults(
	ctx context.Context, req domain.LookupRequest, results []domain.LookupResult,
) {
	if c.cache == nil || len(results) == 0 {
		return
	}
	if err := c.cache.Put(ctx, cacheKey(req), results); err != nil {
		logger.Debug("Cache put failed: %v", err)
	}
}

// cacheKey derives the cache key from the term, the context and any
// explicit source restriction, so a restricted request can never be
// served results produced by providers the caller excluded. The source
// list is sorted first: selection order does not change the result
// set.
func cacheKey(req domain.LookupRequest) string {
	key := strings.ToLower(req.Term) + "|" + req.Context
	if len(req.Sources) > 0 {
		sources := append([]string(nil), req.Sources...)
		sort.Strings(sources)
		key += "|" + strings.Join(sources, ",")
	}
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
