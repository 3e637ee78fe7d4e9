package worker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/service/evaluator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_DetailLinesAreDeterministic(t *testing.T) {
	alarm := entity.Alarm{
		AssetSymbol: "BTCUSDT",
		AlarmType:   entity.AlarmTypeBollinger,
		Params:      map[string]any{"period": 20.0, "std_dev": 2.0},
		Email:       "user@example.com",
	}
	res := evaluator.Result{
		Triggered:     true,
		ObservedPrice: decimal.NewFromInt(51000),
		Detail: map[string]string{
			"upper_band": "52000.00",
			"lower_band": "48000.00",
			"middle":     "50000.00",
		},
	}

	_, first := buildMessage(alarm, res)
	for i := 0; i < 20; i++ {
		_, body := buildMessage(alarm, res)
		require.Equal(t, first, body)
	}

	// keys come out in sorted order
	lower := strings.Index(first, "lower_band:")
	middle := strings.Index(first, "middle:")
	upper := strings.Index(first, "upper_band:")
	require.NotEqual(t, -1, lower)
	require.NotEqual(t, -1, middle)
	require.NotEqual(t, -1, upper)
	assert.Less(t, lower, middle)
	assert.Less(t, middle, upper)
}

func TestBuildMessage_SubjectAndBodyContents(t *testing.T) {
	alarm := entity.Alarm{
		AssetSymbol: "ETHUSDT",
		AlarmType:   entity.AlarmTypePrice,
		Params:      map[string]any{"target_price": 3000.0, "direction": "above"},
		Email:       "user@example.com",
	}
	res := evaluator.Result{
		Triggered:     true,
		ObservedPrice: decimal.NewFromFloat(3100.5),
	}

	subject, body := buildMessage(alarm, res)
	assert.Equal(t, "Financial Alarm Triggered: ETHUSDT", subject)
	assert.Contains(t, body, "Asset: ETHUSDT")
	assert.Contains(t, body, "Type: PRICE")
	assert.Contains(t, body, fmt.Sprintf("Current Price: %s", decimal.NewFromFloat(3100.5).StringFixed(2)))
	assert.Contains(t, body, "target_price")
}
