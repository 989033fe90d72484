// Package driven defines the interfaces the core consumes: provider
// clients, the injected web-search capability, the lookup cache and the
// provider configuration store. Adapters implement these interfaces;
// the core never imports an adapter.
package driven
