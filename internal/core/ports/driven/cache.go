package driven

import (
	"context"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// LookupCache stores completed lookup result sets keyed by term and
// context. The coordinator consults it before fanning out and fills it
// after a successful non-empty lookup. Cache failures are silent: a
// broken cache degrades to a cold one.
type LookupCache interface {
	// Get returns the cached results for the key, or ok=false on a miss.
	Get(ctx context.Context, key string) (results []domain.LookupResult, ok bool, err error)

	// Put stores the results under the key.
	Put(ctx context.Context, key string, results []domain.LookupResult) error

	// Close releases resources.
	Close() error
}
