package decimalx

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMustFromString(t *testing.T) {
	assert.True(t, MustFromString("1.5").Equal(decimal.NewFromFloat(1.5)))
	assert.Panics(t, func() {
		MustFromString("not a number")
	})
}

func TestAvg(t *testing.T) {
	ds := []decimal.Decimal{
		decimal.NewFromInt(8),
		decimal.NewFromInt(10),
		decimal.NewFromInt(12),
	}
	assert.True(t, Avg(ds).Equal(decimal.NewFromInt(10)))
	assert.True(t, Avg(nil).IsZero())
}

func TestStd(t *testing.T) {
	ds := []decimal.Decimal{
		decimal.NewFromInt(8),
		decimal.NewFromInt(10),
		decimal.NewFromInt(12),
	}
	assert.InDelta(t, 1.63299, Std(ds).InexactFloat64(), 1e-4)

	flat := []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(5)}
	assert.True(t, Std(flat).IsZero())
}
