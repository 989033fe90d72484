package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors: transport and parse
// failures on the provider path are logged and swallowed, never
// surfaced through these sentinels.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider protocol.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProviderDisabled indicates a provider exists but is disabled
	// in configuration.
	ErrProviderDisabled = errors.New("provider disabled")

	// ErrSearchUnavailable indicates the external web search capability
	// is not configured. General web lookups are disabled without it.
	ErrSearchUnavailable = errors.New("external search unavailable")

	// ErrRateLimited indicates the endpoint rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrCacheUnavailable indicates the lookup cache is not configured.
	// Lookups still work; every call fans out to the providers.
	ErrCacheUnavailable = errors.New("lookup cache unavailable")
)
