package timetable

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSummaryCache(t *testing.T) (*SummaryCache, *miniredis.Miniredis) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSummaryCache(client, time.Minute), server
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	summaryCache, _ := newTestSummaryCache(t)

	_, found := summaryCache.Get(ctx)
	assert.False(t, found)

	payload := `[{"trainNo":32242,"name":"SEALDAH - DURONTO EXPRESS"}]`
	require.NoError(t, summaryCache.Set(ctx, payload))

	cached, found := summaryCache.Get(ctx)
	assert.True(t, found)
	assert.Equal(t, payload, cached)

	require.NoError(t, summaryCache.Invalidate(ctx))
	_, found = summaryCache.Get(ctx)
	assert.False(t, found)
}

func TestSummaryCacheExpires(t *testing.T) {
	ctx := context.Background()
	summaryCache, server := newTestSummaryCache(t)

	require.NoError(t, summaryCache.Set(ctx, `[]`))
	server.FastForward(2 * time.Minute)

	_, found := summaryCache.Get(ctx)
	assert.False(t, found)
}
