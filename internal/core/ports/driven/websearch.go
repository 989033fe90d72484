package driven

import "context"

// WebHit is a single result from an external web search.
type WebHit struct {
	// Title is the result title as returned by the search engine.
	Title string

	// URL is the result link.
	URL string

	// Snippet is the short excerpt shown with the result.
	Snippet string
}

// WebSearcher is the external web-search capability supplied by the
// surrounding application. It is dependency-injected into the external
// search provider; a nil searcher disables that provider.
type WebSearcher interface {
	// Search returns up to limit ranked hits for the query.
	Search(ctx context.Context, query string, limit int) ([]WebHit, error)
}

// WebSearcherFunc adapts a function to the WebSearcher interface.
type WebSearcherFunc func(ctx context.Context, query string, limit int) ([]WebHit, error)

// Search calls f(ctx, query, limit).
func (f WebSearcherFunc) Search(ctx context.Context, query string, limit int) ([]WebHit, error) {
	return f(ctx, query, limit)
}
