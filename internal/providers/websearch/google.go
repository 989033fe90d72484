package websearch

import (
	"context"
	"fmt"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/vondel-labs/begrip-cli/internal/core/ports/driven"
)

// Ensure GoogleSearcher implements the interface.
var _ driven.WebSearcher = (*GoogleSearcher)(nil)

// maxPerQuery is the Custom Search API per-call result ceiling.
const maxPerQuery = 10

// GoogleSearcher is the production WebSearcher over the Google Custom
// Search JSON API. It needs an API key and a programmable search
// engine ID.
type GoogleSearcher struct {
	svc      *customsearch.Service
	engineID string
}

// NewGoogleSearcher creates a searcher with the given credentials.
func NewGoogleSearcher(ctx context.Context, apiKey, engineID string) (*GoogleSearcher, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("google searcher: missing api key or engine id")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google searcher: %w", err)
	}
	return &GoogleSearcher{svc: svc, engineID: engineID}, nil
}

// Search runs one Custom Search query and maps the items to WebHits.
func (g *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]driven.WebHit, error) {
	if limit <= 0 || limit > maxPerQuery {
		limit = maxPerQuery
	}

	resp, err := g.svc.Cse.List().
		Context(ctx).
		Cx(g.engineID).
		Q(query).
		Num(int64(limit)).
		Do()
	if err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}

	hits := make([]driven.WebHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		hits = append(hits, driven.WebHit{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return hits, nil
}
