// Command begrip is the federated definition lookup CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vondel-labs/begrip-cli/internal/adapters/driven/config/file"
	"github.com/vondel-labs/begrip-cli/internal/adapters/driven/storage/memory"
	"github.com/vondel-labs/begrip-cli/internal/adapters/driven/storage/sqlite"
	"github.com/vondel-labs/begrip-cli/internal/adapters/driving/cli"
	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
	"github.com/vondel-labs/begrip-cli/internal/core/services"
	"github.com/vondel-labs/begrip-cli/internal/logger"
	"github.com/vondel-labs/begrip-cli/internal/providers/caselaw"
	"github.com/vondel-labs/begrip-cli/internal/providers/mediawiki"
	"github.com/vondel-labs/begrip-cli/internal/providers/sru"
	"github.com/vondel-labs/begrip-cli/internal/providers/websearch"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	providerStore, err := file.NewProviderStore("")
	if err != nil {
		return fmt.Errorf("initialising provider store: %w", err)
	}

	configs, err := providerStore.Load()
	if err != nil {
		return fmt.Errorf("loading providers: %w", err)
	}

	clients, err := buildClients(configs, configStore)
	if err != nil {
		return fmt.Errorf("building provider clients: %w", err)
	}

	var cache driven.LookupCache
	if !configStore.GetBool("cache.disabled") {
		store, err := sqlite.NewStore("")
		if err != nil {
			// A broken cache store degrades to a process-local one.
			logger.Warn("Persistent cache unavailable, using in-memory cache: %v", err)
			cache = memory.NewCache(sqlite.DefaultTTL)
		} else {
			cache = store
			defer store.Close()
		}
	}

	coordinator := services.NewLookupCoordinator(
		clients,
		services.NewJuridicalBooster(),
		services.NewRankingEngine(),
		services.NewContextFilter(),
		cache,
	)

	cli.SetLookupService(coordinator)
	cli.SetVersion(version)
	return cli.Execute()
}

// buildClients constructs one provider client per enabled configuration.
func buildClients(
	configs []*domain.ProviderConfig, configStore driven.ConfigStore,
) ([]driven.ProviderClient, error) {
	clients := make([]driven.ProviderClient, 0, len(configs))

	for _, cfg := range configs {
		switch cfg.Protocol {
		case domain.ProtocolSRU:
			clients = append(clients, sru.NewClient(cfg))
		case domain.ProtocolMediaWiki:
			clients = append(clients, mediawiki.NewClient(cfg))
		case domain.ProtocolRest:
			clients = append(clients, caselaw.NewClient(cfg))
		case domain.ProtocolExternalSearch:
			searcher := buildWebSearcher(configStore)
			clients = append(clients, websearch.NewClient(cfg, searcher))
		default:
			return nil, fmt.Errorf("provider %q: protocol %q: %w",
				cfg.Name, cfg.Protocol, domain.ErrUnsupportedType)
		}
	}

	return clients, nil
}

// buildWebSearcher creates the external search backend from the
// configured credentials, or nil when none are set. A nil searcher
// makes the websearch provider a silent no-op.
func buildWebSearcher(configStore driven.ConfigStore) driven.WebSearcher {
	apiKey := configStore.GetString("websearch.google_api_key")
	engineID := configStore.GetString("websearch.google_engine_id")
	if apiKey == "" || engineID == "" {
		logger.Debug("Web search disabled: no Google API credentials configured")
		return nil
	}

	searcher, err := websearch.NewGoogleSearcher(context.Background(), apiKey, engineID)
	if err != nil {
		logger.Warn("Web search disabled: %v", err)
		return nil
	}
	return searcher
}
