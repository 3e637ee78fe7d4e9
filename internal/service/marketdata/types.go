package marketdata

import (
	"context"
	"errors"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/shopspring/decimal"
)

var (
	// ErrPriceUnavailable upstream 价格获取重试耗尽
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrHistoryUnavailable the provider returned fewer points than the caller needs
	ErrHistoryUnavailable = errors.New("historical data unavailable")
)

type Point struct {
	Time  time.Time
	Close decimal.Decimal
}

// Series ascending by time, no duplicate timestamps.
// Fetched per evaluation, never persisted.
type Series []Point

func (s Series) Closes() []decimal.Decimal {
	closes := make([]decimal.Decimal, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

func (s Series) Last() Point {
	return s[len(s)-1]
}

// Provider 单一上游行情数据源
type Provider interface {
	CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// HistoricalSeries returns at least minPoints most-recent closes, ascending.
	HistoricalSeries(ctx context.Context, symbol string, minPoints int) (Series, error)
}

// Source is what the worker sees: provider selection by asset class.
type Source interface {
	CurrentPrice(ctx context.Context, class entity.AssetClass, symbol string) (decimal.Decimal, error)
	HistoricalSeries(ctx context.Context, class entity.AssetClass, symbol string, minPoints int) (Series, error)
	// EndCycle releases per-cycle state (series caches); prices go stale across cycles.
	EndCycle()
}
