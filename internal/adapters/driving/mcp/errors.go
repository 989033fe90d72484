// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Begrip. It enables AI assistants like Claude to look up Dutch legal and
// general definitions through the federated lookup pipeline.
package mcp

import "errors"

// ErrMissingLookupService is returned when the lookup service is not provided.
var ErrMissingLookupService = errors.New("mcp: lookup service is required")
