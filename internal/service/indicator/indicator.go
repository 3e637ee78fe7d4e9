package indicator

import (
	"errors"
	"fmt"

	"github.com/Ahmet872/Alarm-System/pkg/decimalx"
	"github.com/shopspring/decimal"
)

var ErrInsufficientData = errors.New("insufficient data for indicator")

var hundred = decimal.NewFromInt(100)

// RSI computes the Relative Strength Index over the last period deltas,
// as a simple moving average of gains vs. losses. Needs period+1 closes.
//
// Edge cases are pinned down explicitly instead of leaking through the
// division: no losses in the window means RSI = 100, a completely flat
// window (no gains either) is treated as neutral momentum, RSI = 50.
func RSI(closes []decimal.Decimal, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, fmt.Errorf("%w: rsi period must be positive, got %d", ErrInsufficientData, period)
	}
	if len(closes) < period+1 {
		return decimal.Zero, fmt.Errorf("%w: rsi needs %d closes, got %d", ErrInsufficientData, period+1, len(closes))
	}

	window := closes[len(closes)-period-1:]
	gainSum, lossSum := decimal.Zero, decimal.Zero
	for i := 1; i < len(window); i++ {
		delta := window[i].Sub(window[i-1])
		if delta.IsPositive() {
			gainSum = gainSum.Add(delta)
		} else {
			lossSum = lossSum.Add(delta.Neg())
		}
	}

	if lossSum.IsZero() {
		if gainSum.IsZero() {
			return decimal.NewFromInt(50), nil
		}
		return hundred, nil
	}

	n := decimal.NewFromInt(int64(period))
	avgGain := gainSum.Div(n)
	avgLoss := lossSum.Div(n)
	rs := avgGain.Div(avgLoss)
	return hundred.Sub(hundred.Div(decimal.NewFromInt(1).Add(rs))), nil
}

// BollingerBands returns the upper and lower band over the trailing period
// closes: sma ± stdDev multiples of the population standard deviation.
func BollingerBands(closes []decimal.Decimal, period int, stdDev float64) (upper, lower decimal.Decimal, err error) {
	if period <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bollinger period must be positive, got %d", ErrInsufficientData, period)
	}
	if len(closes) < period {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: bollinger needs %d closes, got %d", ErrInsufficientData, period, len(closes))
	}

	window := closes[len(closes)-period:]
	sma := decimalx.Avg(window)
	band := decimalx.Std(window).Mul(decimal.NewFromFloat(stdDev))
	return sma.Add(band), sma.Sub(band), nil
}
