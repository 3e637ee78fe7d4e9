package binance

import (
	"context"
	"fmt"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/service/marketdata"
	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var _ marketdata.Provider = (*Provider)(nil)

// Provider crypto 行情数据源, 基于币安现货API
// Symbols use the exchange's joined format (BTCUSDT, not BTC/USDT).
type Provider struct {
	cli      *binance.Client
	interval string
}

type Option func(p *Provider)

// WithInterval overrides the candle interval used for historical series.
func WithInterval(interval string) Option {
	return func(p *Provider) {
		p.interval = interval
	}
}

func NewProvider(cli *binance.Client, opts ...Option) *Provider {
	p := &Provider{
		cli:      cli,
		interval: "1h",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	prices, err := p.cli.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, fmt.Errorf("symbol %s not found", symbol)
	}
	return decimal.NewFromString(prices[0].Price)
}

func (p *Provider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (marketdata.Series, error) {
	klines, err := p.cli.NewKlinesService().
		Symbol(symbol).
		Interval(p.interval).
		Limit(minPoints).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(klines) < minPoints {
		return nil, fmt.Errorf("%w: %s returned %d of %d points",
			marketdata.ErrHistoryUnavailable, symbol, len(klines), minPoints)
	}
	return p.convertKlines(klines)
}

func (p *Provider) convertKlines(klines []*binance.Kline) (marketdata.Series, error) {
	series := make(marketdata.Series, len(klines))
	for i, k := range klines {
		closePrice, err := decimal.NewFromString(k.Close)
		if err != nil {
			return nil, fmt.Errorf("parse kline close %q: %w", k.Close, err)
		}
		series[i] = marketdata.Point{
			Time:  time.UnixMilli(k.CloseTime),
			Close: closePrice,
		}
	}
	return series, nil
}
