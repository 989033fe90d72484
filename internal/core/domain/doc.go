// Package domain contains the core business entities for federated
// definition lookups: requests, results, provider configuration and
// classified context tokens. It has no dependencies on adapters or
// external services.
package domain
