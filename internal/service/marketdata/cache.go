package marketdata

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

const DefaultCacheSize = 100

var _ Provider = (*cachedProvider)(nil)

// cachedProvider memoizes historical series within a scan cycle so alarms
// sharing a symbol don't refetch the same candles. Best effort: when full,
// new entries are simply not cached. Cleared via Purge at cycle end.
// Current prices are never cached.
type cachedProvider struct {
	next    Provider
	maxSize int

	mu     sync.RWMutex
	series map[string]Series
}

func WithSeriesCache(next Provider, maxSize int) Provider {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &cachedProvider{
		next:    next,
		maxSize: maxSize,
		series:  make(map[string]Series),
	}
}

func (p *cachedProvider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return p.next.CurrentPrice(ctx, symbol)
}

func (p *cachedProvider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (Series, error) {
	key := fmt.Sprintf("%s:%d", symbol, minPoints)

	p.mu.RLock()
	cached, ok := p.series[key]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	series, err := p.next.HistoricalSeries(ctx, symbol, minPoints)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.series) < p.maxSize {
		p.series[key] = series
	}
	p.mu.Unlock()
	return series, nil
}

func (p *cachedProvider) Purge() {
	p.mu.Lock()
	p.series = make(map[string]Series)
	p.mu.Unlock()
}
