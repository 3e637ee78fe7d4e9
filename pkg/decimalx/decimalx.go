package decimalx

import (
	"math"

	"github.com/shopspring/decimal"
)

func MustFromString(s string) decimal.Decimal {
	f, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

func Avg(ds []decimal.Decimal) decimal.Decimal {
	if len(ds) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, d := range ds {
		sum = sum.Add(d)
	}
	return sum.Div(decimal.NewFromInt(int64(len(ds))))
}

// Std 总体标准差
// decimal has no square root, so the variance drops to float64 at the end.
func Std(ds []decimal.Decimal) decimal.Decimal {
	if len(ds) == 0 {
		return decimal.Zero
	}
	avg := Avg(ds)
	sumSq := decimal.Zero
	for _, d := range ds {
		diff := d.Sub(avg)
		sumSq = sumSq.Add(diff.Mul(diff))
	}
	variance := sumSq.Div(decimal.NewFromInt(int64(len(ds))))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}
