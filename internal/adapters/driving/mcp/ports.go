package mcp

import (
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Lookup provides federated definition lookups.
	Lookup driving.LookupService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Lookup == nil {
		return ErrMissingLookupService
	}
	return nil
}
