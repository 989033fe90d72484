package domain

import (
	"fmt"
	"strings"
)

// ProtocolKind identifies the wire protocol a provider speaks.
type ProtocolKind string

const (
	// ProtocolMediaWiki is the Wikipedia/Wiktionary REST + search API.
	ProtocolMediaWiki ProtocolKind = "mediawiki"

	// ProtocolSRU is the CQL/XML searchRetrieve legal-search protocol.
	ProtocolSRU ProtocolKind = "sru"

	// ProtocolRest is the ECLI-keyed case-law open-data API.
	ProtocolRest ProtocolKind = "rest"

	// ProtocolExternalSearch is a third-party general web search.
	ProtocolExternalSearch ProtocolKind = "external_search"
)

// Valid reports whether the protocol kind is one of the known kinds.
func (p ProtocolKind) Valid() bool {
	switch p {
	case ProtocolMediaWiki, ProtocolSRU, ProtocolRest, ProtocolExternalSearch:
		return true
	}
	return false
}

// DefaultBreakerThreshold is the consecutive-empty-stage count after
// which an SRU provider stops querying within a single lookup call.
const DefaultBreakerThreshold = 2

// DefaultProviderWeight is used when configuration omits a weight.
const DefaultProviderWeight = 0.8

// ProviderConfig is the startup-time, read-only configuration of one
// provider. It is validated and defaulted once at load time and passed
// by reference into the client constructors.
type ProviderConfig struct {
	// Name uniquely identifies the provider ("wikipedia_nl", "bwb", ...).
	Name string `toml:"name"`

	// BaseURL is the primary endpoint.
	BaseURL string `toml:"base_url"`

	// Mirrors are ordered fallback endpoints tried after BaseURL.
	Mirrors []string `toml:"mirrors"`

	// Protocol selects the client implementation.
	Protocol ProtocolKind `toml:"protocol"`

	// Weight is the provider-level confidence prior applied during
	// ranking. Must end up in (0,1].
	Weight float64 `toml:"weight"`

	// Juridical marks authoritative legal sources.
	Juridical bool `toml:"juridical"`

	// Enabled disables the provider without removing its config.
	Enabled bool `toml:"enabled"`

	// RecordSchema selects the SRU record schema ("dc" or "gzd").
	RecordSchema string `toml:"record_schema"`

	// ProtocolVersion selects the SRU envelope generation ("1.2" or "2.0").
	ProtocolVersion string `toml:"protocol_version"`

	// BreakerThreshold is the consecutive-empty-stage circuit breaker
	// threshold for SRU providers (default 2).
	BreakerThreshold int `toml:"circuit_breaker_threshold"`

	// RatePerSecond throttles outbound requests to the endpoint.
	// Zero means no throttling.
	RatePerSecond float64 `toml:"rate_per_second"`
}

// ApplyDefaults fills in zero-valued optional fields.
func (c *ProviderConfig) ApplyDefaults() {
	if c.Weight == 0 {
		c.Weight = DefaultProviderWeight
	}
	if c.BreakerThreshold == 0 {
		c.BreakerThreshold = DefaultBreakerThreshold
	}
	if c.Protocol == ProtocolSRU {
		if c.RecordSchema == "" {
			c.RecordSchema = "dc"
		}
		if c.ProtocolVersion == "" {
			c.ProtocolVersion = "1.2"
		}
	}
}

// Validate checks the configuration for load-time errors.
// Configuration errors fail fast here, outside the per-request path.
func (c *ProviderConfig) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("provider name: %w", ErrInvalidInput)
	}
	if !c.Protocol.Valid() {
		return fmt.Errorf("provider %q: protocol %q: %w", c.Name, c.Protocol, ErrUnsupportedType)
	}
	if c.Protocol != ProtocolExternalSearch && strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("provider %q: base_url: %w", c.Name, ErrInvalidInput)
	}
	if c.Weight < 0 || c.Weight > 1 {
		return fmt.Errorf("provider %q: weight %v outside [0,1]: %w", c.Name, c.Weight, ErrInvalidInput)
	}
	if c.BreakerThreshold < 0 {
		return fmt.Errorf("provider %q: circuit breaker threshold %d: %w", c.Name, c.BreakerThreshold, ErrInvalidInput)
	}
	return nil
}

// Endpoints returns the primary base URL followed by the mirrors.
func (c *ProviderConfig) Endpoints() []string {
	out := make([]string, 0, 1+len(c.Mirrors))
	if c.BaseURL != "" {
		out = append(out, c.BaseURL)
	}
	out = append(out, c.Mirrors...)
	return out
}
