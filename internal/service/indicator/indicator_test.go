package indicator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closesFromFloats(fs []float64) []decimal.Decimal {
	ds := make([]decimal.Decimal, len(fs))
	for i, f := range fs {
		ds[i] = decimal.NewFromFloat(f)
	}
	return ds
}

func TestRSI_MonotonicRising(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	rsi, err := RSI(closesFromFloats(closes), 14)
	require.NoError(t, err)

	// no losses in the window, must be pinned to exactly 100
	assert.True(t, rsi.Equal(decimal.NewFromInt(100)), "rsi = %s", rsi)
}

func TestRSI_MonotonicFalling(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}

	rsi, err := RSI(closesFromFloats(closes), 14)
	require.NoError(t, err)

	assert.True(t, rsi.Equal(decimal.Zero), "rsi = %s", rsi)
	assert.True(t, rsi.GreaterThanOrEqual(decimal.Zero))
}

func TestRSI_FlatSeriesIsNeutral(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 42
	}

	// avgGain == avgLoss == 0: treated as neutral momentum, not an error
	rsi, err := RSI(closesFromFloats(closes), 14)
	require.NoError(t, err)
	assert.True(t, rsi.Equal(decimal.NewFromInt(50)), "rsi = %s", rsi)
}

func TestRSI_KnownValue(t *testing.T) {
	// deltas over period 3: +1, -1, +2 => avgGain=1, avgLoss=1/3, rs=3
	closes := closesFromFloats([]float64{10, 11, 10, 12})

	rsi, err := RSI(closes, 3)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, rsi.InexactFloat64(), 1e-9)
}

func TestRSI_Bounded(t *testing.T) {
	closes := closesFromFloats([]float64{10, 12, 9, 14, 8, 15, 11, 13, 10, 16, 12, 14, 9, 17, 13})

	rsi, err := RSI(closes, 14)
	require.NoError(t, err)
	assert.True(t, rsi.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, rsi.LessThanOrEqual(decimal.NewFromInt(100)))
}

func TestRSI_InsufficientData(t *testing.T) {
	closes := closesFromFloats([]float64{10, 11, 12})

	_, err := RSI(closes, 14)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = RSI(closes, 0)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestBollingerBands_KnownValue(t *testing.T) {
	closes := closesFromFloats([]float64{8, 10, 12})

	upper, lower, err := BollingerBands(closes, 3, 2)
	require.NoError(t, err)

	// sma=10, population std=sqrt(8/3)
	assert.InDelta(t, 13.26599, upper.InexactFloat64(), 1e-4)
	assert.InDelta(t, 6.73401, lower.InexactFloat64(), 1e-4)
}

func TestBollingerBands_OrderingInvariant(t *testing.T) {
	closes := closesFromFloats([]float64{10, 12, 9, 14, 8, 15, 11, 13, 10, 16})

	upper, lower, err := BollingerBands(closes, 10, 2)
	require.NoError(t, err)

	sma := decimal.NewFromFloat(11.8)
	assert.True(t, upper.GreaterThanOrEqual(sma))
	assert.True(t, sma.GreaterThanOrEqual(lower))
}

func TestBollingerBands_FlatSeries(t *testing.T) {
	closes := closesFromFloats([]float64{100, 100, 100, 100})

	upper, lower, err := BollingerBands(closes, 4, 2)
	require.NoError(t, err)
	assert.True(t, upper.Equal(lower), "flat series collapses the envelope")
	assert.True(t, upper.Equal(decimal.NewFromInt(100)))
}

func TestBollingerBands_InsufficientData(t *testing.T) {
	closes := closesFromFloats([]float64{10, 11})

	_, _, err := BollingerBands(closes, 20, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
