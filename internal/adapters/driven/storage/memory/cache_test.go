package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vondel-labs/begrip-cli/internal/core/domain"
)

func sampleResults() []domain.LookupResult {
	r := domain.NewLookupResult("mandaat", domain.WebSource{
		Name: "wikipedia_nl", URL: "https://nl.wikipedia.org/wiki/Mandaat", Confidence: 0.8})
	r.Definition = "De bevoegdheid om in naam van een ander te handelen."
	return []domain.LookupResult{r}
}

func TestCacheMissAndHit(t *testing.T) {
	cache := NewCache(time.Hour)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, "sleutel", sampleResults()))

	got, ok, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "mandaat", got[0].Term)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(time.Hour)
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Put(ctx, "sleutel", sampleResults()))

	current = current.Add(2 * time.Hour)
	_, ok, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, cache.Len(), "expired entry is removed on read")
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	cache := NewCache(0)
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Put(ctx, "sleutel", sampleResults()))

	current = current.Add(1000 * time.Hour)
	_, ok, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheReturnsCopy(t *testing.T) {
	cache := NewCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "sleutel", sampleResults()))

	got, _, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	got[0].Definition = "gemuteerd"

	again, _, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	assert.NotEqual(t, "gemuteerd", again[0].Definition)
}

func TestCacheClose(t *testing.T) {
	cache := NewCache(time.Hour)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "sleutel", sampleResults()))
	require.NoError(t, cache.Close())

	_, ok, err := cache.Get(ctx, "sleutel")
	require.NoError(t, err)
	assert.False(t, ok)
}
