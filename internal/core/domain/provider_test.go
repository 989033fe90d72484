package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderConfigApplyDefaults(t *testing.T) {
	cfg := ProviderConfig{
		Name:     "bwb",
		BaseURL:  "https://zoekservice.overheid.nl/sru/Search",
		Protocol: ProtocolSRU,
	}

	cfg.ApplyDefaults()

	assert.Equal(t, DefaultProviderWeight, cfg.Weight)
	assert.Equal(t, DefaultBreakerThreshold, cfg.BreakerThreshold)
	assert.Equal(t, "dc", cfg.RecordSchema)
	assert.Equal(t, "1.2", cfg.ProtocolVersion)
}

func TestProviderConfigApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := ProviderConfig{
		Name:             "cvdr",
		BaseURL:          "https://zoekservice.overheid.nl/sru/Search",
		Protocol:         ProtocolSRU,
		Weight:           0.9,
		RecordSchema:     "gzd",
		ProtocolVersion:  "2.0",
		BreakerThreshold: 3,
	}

	cfg.ApplyDefaults()

	assert.Equal(t, 0.9, cfg.Weight)
	assert.Equal(t, 3, cfg.BreakerThreshold)
	assert.Equal(t, "gzd", cfg.RecordSchema)
	assert.Equal(t, "2.0", cfg.ProtocolVersion)
}

func TestProviderConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr error
	}{
		{
			name: "valid sru provider",
			cfg: ProviderConfig{
				Name:     "bwb",
				BaseURL:  "https://example.org/sru",
				Protocol: ProtocolSRU,
				Weight:   0.95,
			},
		},
		{
			name: "external search needs no base url",
			cfg: ProviderConfig{
				Name:     "websearch",
				Protocol: ProtocolExternalSearch,
				Weight:   0.7,
			},
		},
		{
			name:    "missing name",
			cfg:     ProviderConfig{BaseURL: "https://example.org", Protocol: ProtocolRest, Weight: 0.5},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown protocol",
			cfg:     ProviderConfig{Name: "x", BaseURL: "https://example.org", Protocol: "soap", Weight: 0.5},
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "missing base url",
			cfg:     ProviderConfig{Name: "x", Protocol: ProtocolRest, Weight: 0.5},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "weight above one",
			cfg:     ProviderConfig{Name: "x", BaseURL: "https://example.org", Protocol: ProtocolRest, Weight: 1.2},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProviderConfigEndpoints(t *testing.T) {
	cfg := ProviderConfig{
		Name:    "bwb",
		BaseURL: "https://primary.example.org/sru",
		Mirrors: []string{"https://mirror1.example.org/sru", "https://mirror2.example.org/sru"},
	}

	assert.Equal(t, []string{
		"https://primary.example.org/sru",
		"https://mirror1.example.org/sru",
		"https://mirror2.example.org/sru",
	}, cfg.Endpoints())
}

func TestProtocolKindValid(t *testing.T) {
	assert.True(t, ProtocolMediaWiki.Valid())
	assert.True(t, ProtocolSRU.Valid())
	assert.True(t, ProtocolRest.Valid())
	assert.True(t, ProtocolExternalSearch.Valid())
	assert.False(t, ProtocolKind("graphql").Valid())
	assert.False(t, ProtocolKind("").Valid())
}
