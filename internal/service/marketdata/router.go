package marketdata

import (
	"context"
	"fmt"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/shopspring/decimal"
)

var _ Source = (*Router)(nil)

// Router picks a provider per asset class. Providers are interchangeable,
// callers never see which upstream answered.
type Router struct {
	providers map[entity.AssetClass]Provider
}

func NewRouter(providers map[entity.AssetClass]Provider) *Router {
	return &Router{providers: providers}
}

func (r *Router) provider(class entity.AssetClass) (Provider, error) {
	p, ok := r.providers[class]
	if !ok {
		return nil, fmt.Errorf("no market data provider for asset class %q", class)
	}
	return p, nil
}

func (r *Router) CurrentPrice(ctx context.Context, class entity.AssetClass, symbol string) (decimal.Decimal, error) {
	p, err := r.provider(class)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	return p.CurrentPrice(ctx, symbol)
}

func (r *Router) HistoricalSeries(ctx context.Context, class entity.AssetClass, symbol string, minPoints int) (Series, error) {
	p, err := r.provider(class)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryUnavailable, err)
	}
	return p.HistoricalSeries(ctx, symbol, minPoints)
}

func (r *Router) EndCycle() {
	for _, p := range r.providers {
		if purger, ok := p.(interface{ Purge() }); ok {
			purger.Purge()
		}
	}
}
