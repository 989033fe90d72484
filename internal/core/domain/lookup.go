package domain

import (
	"time"
)

// DefaultMaxResults is the number of results returned when the caller
// does not specify a limit.
const DefaultMaxResults = 5

// DefaultTimeout bounds each provider fetch when the caller does not
// specify one.
const DefaultTimeout = 30 * time.Second

// LookupRequest describes a single federated definition lookup.
// A request is immutable once issued.
type LookupRequest struct {
	// Term is the word or phrase to find definitional evidence for.
	Term string

	// Sources optionally restricts the lookup to named providers.
	// Empty means the coordinator picks providers heuristically.
	Sources []string

	// Context is an optional "|"-delimited set of free-text tokens
	// describing the organisational and legal setting of the term.
	Context string

	// MaxResults caps the returned result list (default 5).
	MaxResults int

	// Timeout bounds each individual provider fetch (default 30s).
	Timeout time.Duration
}

// Normalised returns a copy of the request with defaults applied.
func (r LookupRequest) Normalised() LookupRequest {
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.Timeout <= 0 {
		r.Timeout = DefaultTimeout
	}
	return r
}

// WebSource describes the provenance of a lookup result.
type WebSource struct {
	// Name is the configured provider name (e.g. "wikipedia_nl").
	Name string

	// URL points at the concrete page or record the evidence came from.
	URL string

	// Confidence is the provider's raw confidence in [0,1].
	// Provider weighting is applied later, during ranking, exactly once.
	Confidence float64

	// Juridical marks sources that are authoritative legal publications.
	Juridical bool

	// Protocol identifies the wire protocol the result came through.
	Protocol ProtocolKind
}

// LookupResult is one piece of candidate definitional evidence.
type LookupResult struct {
	// Term is the looked-up term as issued.
	Term string

	// Source describes where the evidence came from.
	Source WebSource

	// Definition is the definitional text, if any.
	Definition string

	// Context is a short snippet surrounding the definition, if any.
	Context string

	// Success indicates the provider produced usable evidence.
	// Unsuccessful results never reach the ranking stage.
	Success bool

	// Error carries a human-readable failure description when Success
	// is false.
	Error string

	// Metadata holds free-form provenance fields: retrieval timestamp,
	// content hash, legal code and article numbers, and so on.
	Metadata map[string]any
}

// NewLookupResult creates a successful result with a freshly allocated
// metadata map, stamped with the retrieval time.
func NewLookupResult(term string, source WebSource) LookupResult {
	return LookupResult{
		Term:    term,
		Source:  source,
		Success: true,
		Metadata: map[string]any{
			"retrieved_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// Attempt is one entry in the append-only audit log of a lookup call.
// It records a single query attempt against a provider stage.
type Attempt struct {
	// Provider is the provider name the attempt went to.
	Provider string

	// Stage names the query stage, if the provider uses stages
	// (e.g. "context_full", "wet_only").
	Stage string

	// Query is the term variant or query string that was tried.
	Query string

	// Success reports whether the attempt yielded at least one record.
	Success bool

	// Duration is the wall time the attempt took.
	Duration time.Duration

	// Err holds the failure description for transport/parse failures.
	Err string
}

// LookupReport is what a lookup call hands back: the ranked results and
// the parallel attempt log for observability and tests.
type LookupReport struct {
	// RequestID uniquely identifies this lookup invocation.
	RequestID string

	// Results is the ranked, deduplicated, context-filtered result set.
	Results []LookupResult

	// Attempts is the ordered audit log of every provider attempt.
	Attempts []Attempt
}
