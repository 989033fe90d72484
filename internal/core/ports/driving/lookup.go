package driving

import (
	"context"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// LookupService is the driving port for federated definition lookups.
// CLI, MCP and HTTP surfaces all consume this interface.
type LookupService interface {
	// Lookup aggregates, ranks and filters definitional evidence for
	// the request term. Provider failures never surface as errors; the
	// returned error is non-nil only for invalid input.
	Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupReport, error)

	// Providers returns the configured provider set, for listing.
	Providers() []*domain.ProviderConfig
}
