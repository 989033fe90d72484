package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

// LookupInput is the input schema for the lookup tool.
type LookupInput struct {
	Term    string   `json:"term" jsonschema:"the word or phrase to find definitions for"`
	Context string   `json:"context,omitempty" jsonschema:"optional pipe-delimited context tokens, e.g. 'gemeente utrecht|bestuursrecht|awb'"`
	Sources []string `json:"sources,omitempty" jsonschema:"optional provider names to restrict the lookup to"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// LookupOutput is the output schema for the lookup tool.
type LookupOutput struct {
	Term    string               `json:"term"`
	Results []LookupResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// LookupResultOutput represents a single definition result.
type LookupResultOutput struct {
	Provider   string  `json:"provider"`
	Title      string  `json:"title,omitempty"`
	Definition string  `json:"definition"`
	Snippet    string  `json:"snippet,omitempty"`
	URL        string  `json:"url"`
	Confidence float64 `json:"confidence"`
	Juridical  bool    `json:"juridical"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup",
		Description: "Look up definitional evidence for a Dutch term across legal registers, encyclopedias and web search",
	}, s.handleLookup)
}

// handleLookup handles the lookup tool invocation.
func (s *Server) handleLookup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LookupInput,
) (*mcp.CallToolResult, LookupOutput, error) {
	req := domain.LookupRequest{
		Term:       input.Term,
		Context:    input.Context,
		Sources:    input.Sources,
		MaxResults: input.Limit,
		Timeout:    30 * time.Second,
	}

	report, err := s.ports.Lookup.Lookup(ctx, req)
	if err != nil {
		return nil, LookupOutput{}, err
	}

	output := LookupOutput{
		Term:    input.Term,
		Results: make([]LookupResultOutput, len(report.Results)),
		Count:   len(report.Results),
	}

	for i := range report.Results {
		r := &report.Results[i]
		title, _ := r.Metadata["title"].(string)
		output.Results[i] = LookupResultOutput{
			Provider:   r.Source.Name,
			Title:      title,
			Definition: r.Definition,
			Snippet:    r.Context,
			URL:        r.Source.URL,
			Confidence: r.Source.Confidence,
			Juridical:  r.Source.Juridical,
		}
	}

	return nil, output, nil
}
