package mcp

import (
	"context"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
	"github.com/vondel-labs/begrip-cli/internal/core/ports/driving"
)

// mockLookupService is a scriptable driving.LookupService for tests.
type mockLookupService struct {
	report    *domain.LookupReport
	err       error
	providers []*domain.ProviderConfig
	lastReq   domain.LookupRequest
}

var _ driving.LookupService = (*mockLookupService)(nil)

func (m *mockLookupService) Lookup(
	_ context.Context, req domain.LookupRequest,
) (*domain.LookupReport, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.LookupReport{RequestID: "test-request"}, nil
}

func (m *mockLookupService) Providers() []*domain.ProviderConfig {
	return m.providers
}

func mockReport() *domain.LookupReport {
	r := domain.NewLookupResult("dwangsom", domain.WebSource{
		Name:       "bwb",
		URL:        "https://wetten.overheid.nl/BWBR0005537",
		Confidence: 0.95,
		Juridical:  true,
		Protocol:   domain.ProtocolSRU,
	})
	r.Definition = "Een last onder dwangsom is een herstelsanctie."
	r.Metadata["title"] = "Algemene wet bestuursrecht"

	return &domain.LookupReport{
		RequestID: "test-request",
		Results:   []domain.LookupResult{r},
	}
}
