package driven

import (
	"context"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// ProviderClient fetches definitional evidence from one external source.
// Each protocol kind (mediawiki, sru, rest, external_search) implements
// this interface.
type ProviderClient interface {
	// Name returns the configured provider name.
	Name() string

	// Config returns the provider's startup-time configuration.
	Config() *domain.ProviderConfig

	// Fetch retrieves candidate evidence for the request term.
	//
	// A provider may run several sequential internal query stages; each
	// attempted stage is reported through sink so the coordinator can
	// keep its audit log. Fetch returns only successful results; an
	// empty slice with a nil error means "nothing found", which is not
	// a failure. Transport and parse errors are returned so the
	// coordinator can log and exclude the provider, never to abort the
	// overall lookup.
	Fetch(ctx context.Context, req domain.LookupRequest, tokens domain.ContextTokens, sink AttemptSink) ([]domain.LookupResult, error)
}

// AttemptSink receives audit-log entries from provider clients.
// Implementations must be safe for concurrent use; provider fetches run
// in parallel.
type AttemptSink interface {
	Record(attempt domain.Attempt)
}

// AttemptSinkFunc adapts a function to the AttemptSink interface.
type AttemptSinkFunc func(attempt domain.Attempt)

// Record calls f(attempt).
func (f AttemptSinkFunc) Record(attempt domain.Attempt) { f(attempt) }
