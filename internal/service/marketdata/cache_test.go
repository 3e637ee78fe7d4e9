package marketdata

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	priceCalls   int
	historyCalls int
}

func (p *countingProvider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	p.priceCalls++
	return decimal.NewFromInt(100), nil
}

func (p *countingProvider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (Series, error) {
	p.historyCalls++
	series := make(Series, minPoints)
	for i := range series {
		series[i] = Point{Time: time.Now(), Close: decimal.NewFromInt(int64(i))}
	}
	return series, nil
}

func TestSeriesCache_MemoizesWithinCycle(t *testing.T) {
	upstream := &countingProvider{}
	p := WithSeriesCache(upstream, 10)
	ctx := context.Background()

	first, err := p.HistoricalSeries(ctx, "BTCUSDT", 15)
	require.NoError(t, err)
	second, err := p.HistoricalSeries(ctx, "BTCUSDT", 15)
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.historyCalls)
	assert.Equal(t, first, second)
}

func TestSeriesCache_KeyIncludesPeriod(t *testing.T) {
	upstream := &countingProvider{}
	p := WithSeriesCache(upstream, 10)
	ctx := context.Background()

	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 15)
	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 21)

	assert.Equal(t, 2, upstream.historyCalls)
}

func TestSeriesCache_PurgeDropsEntries(t *testing.T) {
	upstream := &countingProvider{}
	p := WithSeriesCache(upstream, 10)
	ctx := context.Background()

	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 15)
	p.(interface{ Purge() }).Purge()
	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 15)

	assert.Equal(t, 2, upstream.historyCalls, "stale series must not survive a cycle")
}

func TestSeriesCache_BoundedBestEffort(t *testing.T) {
	upstream := &countingProvider{}
	p := WithSeriesCache(upstream, 1)
	ctx := context.Background()

	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 15) // cached
	_, _ = p.HistoricalSeries(ctx, "ETHUSDT", 15) // cache full, passthrough
	_, _ = p.HistoricalSeries(ctx, "ETHUSDT", 15) // still passthrough
	_, _ = p.HistoricalSeries(ctx, "BTCUSDT", 15) // hit

	assert.Equal(t, 3, upstream.historyCalls)
}

func TestSeriesCache_CurrentPriceNeverCached(t *testing.T) {
	upstream := &countingProvider{}
	p := WithSeriesCache(upstream, 10)
	ctx := context.Background()

	_, _ = p.CurrentPrice(ctx, "BTCUSDT")
	_, _ = p.CurrentPrice(ctx, "BTCUSDT")

	assert.Equal(t, 2, upstream.priceCalls)
}
