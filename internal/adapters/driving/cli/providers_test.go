package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvidersCmd_Use(t *testing.T) {
	assert.Equal(t, "providers", providersCmd.Use)
}

func TestProvidersCmd_ListsProviders(t *testing.T) {
	defer setupTestServices(&mockLookupService{})()

	buf, err := execute(t, "providers")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "bwb")
	assert.Contains(t, out, "wikipedia_nl")
	assert.Contains(t, out, "[juridisch]")
	assert.Contains(t, out, "enabled")
}

func TestProvidersCmd_JSONOutput(t *testing.T) {
	defer setupTestServices(&mockLookupService{})()
	defer func() { providersJSON = false }()

	buf, err := execute(t, "providers", "--json")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"Name"`)
	assert.Contains(t, buf.String(), `"bwb"`)
}

func TestProvidersCmd_ServiceNotConfigured(t *testing.T) {
	defer setupTestServices(nil)()

	_, err := execute(t, "providers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
