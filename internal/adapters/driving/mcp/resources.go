package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Begrip resources.
const uriScheme = "begrip://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing providers.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "providers",
		Name:        "providers",
		Description: "List of all configured definition providers",
		MIMEType:    "application/json",
	}, s.handleProvidersResource)
}

// handleProvidersResource returns a list of all configured providers.
func (s *Server) handleProvidersResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	providers := s.ports.Lookup.Providers()

	// Build simplified provider list.
	type providerInfo struct {
		Name      string  `json:"name"`
		Protocol  string  `json:"protocol"`
		BaseURL   string  `json:"base_url,omitempty"`
		Weight    float64 `json:"weight"`
		Juridical bool    `json:"juridical"`
		Enabled   bool    `json:"enabled"`
	}

	infos := make([]providerInfo, len(providers))
	for i, p := range providers {
		infos[i] = providerInfo{
			Name:      p.Name,
			Protocol:  string(p.Protocol),
			BaseURL:   p.BaseURL,
			Weight:    p.Weight,
			Juridical: p.Juridical,
			Enabled:   p.Enabled,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling providers: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
