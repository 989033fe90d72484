// Package driving defines the interfaces the outer surfaces (CLI, MCP,
// HTTP) use to drive the core.
package driving
