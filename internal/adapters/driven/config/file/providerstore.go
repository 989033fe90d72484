package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
)

// Ensure ProviderStore implements the interface.
var _ driven.ProviderConfigStore = (*ProviderStore)(nil)

// ProviderStore loads provider configuration from a TOML file in the
// begrip config directory. Without a file the built-in Dutch legal
// provider set is used, so a fresh install works out of the box.
type ProviderStore struct {
	filePath string
}

// NewProviderStore creates a provider store rooted at configDir.
// If configDir is empty, defaults to ~/.begrip/providers.toml.
func NewProviderStore(configDir string) (*ProviderStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".begrip")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ProviderStore{
		filePath: filepath.Join(configDir, "providers.toml"),
	}, nil
}

// providerFile is the on-disk TOML shape.
type providerFile struct {
	Providers []*domain.ProviderConfig `toml:"providers"`
}

// Load returns the validated provider set. A missing file yields the
// built-in defaults; a malformed or invalid file is a fatal load error.
func (s *ProviderStore) Load() ([]*domain.ProviderConfig, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProviders(), nil
		}
		return nil, fmt.Errorf("read provider config: %w", err)
	}

	var parsed providerFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse provider config %s: %w", s.filePath, err)
	}
	if len(parsed.Providers) == 0 {
		return DefaultProviders(), nil
	}

	seen := make(map[string]bool, len(parsed.Providers))
	for _, cfg := range parsed.Providers {
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("provider config %s: %w", s.filePath, err)
		}
		if seen[cfg.Name] {
			return nil, fmt.Errorf("provider config %s: duplicate provider %q: %w",
				s.filePath, cfg.Name, domain.ErrInvalidInput)
		}
		seen[cfg.Name] = true
	}

	return parsed.Providers, nil
}

// Path returns the provider configuration file path.
func (s *ProviderStore) Path() string {
	return s.filePath
}

// DefaultProviders is the built-in provider set covering the standard
// Dutch definitional sources.
func DefaultProviders() []*domain.ProviderConfig {
	providers := []*domain.ProviderConfig{
		{
			Name:      "bwb",
			BaseURL:   "https://zoekservice.overheid.nl/sru/Search",
			Mirrors:   []string{"https://repository.overheid.nl/sru"},
			Protocol:  domain.ProtocolSRU,
			Weight:    0.95,
			Juridical: true,
			Enabled:   true,
		},
		{
			Name:      "rechtspraak",
			BaseURL:   "https://data.rechtspraak.nl/uitspraken/content",
			Protocol:  domain.ProtocolRest,
			Weight:    0.9,
			Juridical: true,
			Enabled:   true,
		},
		{
			Name:     "wikipedia_nl",
			BaseURL:  "https://nl.wikipedia.org",
			Protocol: domain.ProtocolMediaWiki,
			Weight:   0.8,
			Enabled:  true,
		},
		{
			Name:     "wiktionary_nl",
			BaseURL:  "https://nl.wiktionary.org",
			Protocol: domain.ProtocolMediaWiki,
			Weight:   0.7,
			Enabled:  true,
		},
		{
			Name:     "websearch",
			Protocol: domain.ProtocolExternalSearch,
			Weight:   0.6,
			Enabled:  true,
		},
	}

	for _, cfg := range providers {
		cfg.ApplyDefaults()
	}
	return providers
}
