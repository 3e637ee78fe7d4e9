package marketdata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var _ Provider = (*StaticProvider)(nil)

// StaticProvider 开发环境固定价格数据源
// Deterministic stand-in for live providers: fixed current price and a
// gently rising synthetic series. Used when env is development so the
// pipeline runs without network or credentials.
type StaticProvider struct {
	Price decimal.Decimal
}

func NewStaticProvider(price decimal.Decimal) *StaticProvider {
	return &StaticProvider{Price: price}
}

func (p *StaticProvider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return p.Price, nil
}

func (p *StaticProvider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (Series, error) {
	now := time.Now().Truncate(time.Hour)
	series := make(Series, minPoints)
	step := p.Price.Div(decimal.NewFromInt(int64(minPoints) * 10))
	for i := 0; i < minPoints; i++ {
		series[i] = Point{
			Time:  now.Add(-time.Duration(minPoints-i) * time.Hour),
			Close: p.Price.Sub(step.Mul(decimal.NewFromInt(int64(minPoints - i)))),
		}
	}
	return series, nil
}
