package driven

import "github.com/vondel-labs/begrip-cli/internal/core/domain"

// ProviderConfigStore loads the provider configuration set once at
// startup. Implementations validate and default every entry before
// returning; a load error is fatal at the configuration boundary and
// never reaches the per-request path.
type ProviderConfigStore interface {
	// Load returns the full validated provider configuration set.
	Load() ([]*domain.ProviderConfig, error)
}
