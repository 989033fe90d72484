package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLookupMapsResults(t *testing.T) {
	svc := &mockLookupService{report: mockReport()}
	server, err := NewServer(&Ports{Lookup: svc})
	require.NoError(t, err)

	_, output, err := server.handleLookup(context.Background(), nil, LookupInput{
		Term:    "dwangsom",
		Context: "gemeente utrecht|bestuursrecht",
		Limit:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, "dwangsom", output.Term)
	assert.Equal(t, 1, output.Count)
	require.Len(t, output.Results, 1)

	got := output.Results[0]
	assert.Equal(t, "bwb", got.Provider)
	assert.Equal(t, "Algemene wet bestuursrecht", got.Title)
	assert.Equal(t, "Een last onder dwangsom is een herstelsanctie.", got.Definition)
	assert.Equal(t, "https://wetten.overheid.nl/BWBR0005537", got.URL)
	assert.True(t, got.Juridical)

	// The request carries the tool input through unchanged.
	assert.Equal(t, "dwangsom", svc.lastReq.Term)
	assert.Equal(t, "gemeente utrecht|bestuursrecht", svc.lastReq.Context)
	assert.Equal(t, 3, svc.lastReq.MaxResults)
}

func TestHandleLookupPropagatesError(t *testing.T) {
	svc := &mockLookupService{err: errors.New("lookup mislukt")}
	server, err := NewServer(&Ports{Lookup: svc})
	require.NoError(t, err)

	_, _, err = server.handleLookup(context.Background(), nil, LookupInput{Term: "x"})
	assert.Error(t, err)
}

func TestHandleLookupEmptyReport(t *testing.T) {
	server, err := NewServer(&Ports{Lookup: &mockLookupService{}})
	require.NoError(t, err)

	_, output, err := server.handleLookup(context.Background(), nil, LookupInput{Term: "onbekend"})
	require.NoError(t, err)
	assert.Zero(t, output.Count)
	assert.Empty(t, output.Results)
}
