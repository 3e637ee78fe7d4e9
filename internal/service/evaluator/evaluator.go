package evaluator

import (
	"context"
	"fmt"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/service/indicator"
	"github.com/Ahmet872/Alarm-System/internal/service/marketdata"
	"github.com/shopspring/decimal"
)

// Result 单次评估结果, 立即被 worker 消费, 不落库
type Result struct {
	Triggered     bool
	ObservedPrice decimal.Decimal
	Detail        map[string]string
}

// SeriesFetcher hands the evaluator historical closes on demand, already
// bound to the alarm's provider and symbol. Only indicator alarms pull it.
type SeriesFetcher func(ctx context.Context, minPoints int) (marketdata.Series, error)

type Evaluator struct {
}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate decides whether the alarm condition holds at the current price.
// Params are re-validated first; any failure (bad params, short history,
// upstream error) comes back as an error, never a panic.
//
// RSI policy: triggered when rsi <= threshold, i.e. the asset crossed down
// into the oversold zone the user is watching for.
func (e *Evaluator) Evaluate(ctx context.Context, alarm entity.Alarm, currentPrice decimal.Decimal, fetch SeriesFetcher) (Result, error) {
	if err := ValidateParams(alarm); err != nil {
		return Result{}, err
	}

	switch alarm.AlarmType {
	case entity.AlarmTypePrice:
		return e.evaluatePrice(alarm, currentPrice), nil
	case entity.AlarmTypeRSI:
		return e.evaluateRSI(ctx, alarm, currentPrice, fetch)
	case entity.AlarmTypeBollinger:
		return e.evaluateBollinger(ctx, alarm, currentPrice, fetch)
	default:
		// unreachable after ValidateParams, kept for exhaustiveness
		return Result{}, fmt.Errorf("%w: unknown alarm type %q", ErrInvalidParams, alarm.AlarmType)
	}
}

func (e *Evaluator) evaluatePrice(alarm entity.Alarm, currentPrice decimal.Decimal) Result {
	targetFloat, _ := alarm.ParamFloat("target_price")
	target := decimal.NewFromFloat(targetFloat)
	direction := Direction(alarm)

	triggered := false
	if direction == DirectionAbove {
		triggered = currentPrice.GreaterThanOrEqual(target)
	} else {
		triggered = currentPrice.LessThanOrEqual(target)
	}

	return Result{
		Triggered:     triggered,
		ObservedPrice: currentPrice,
		Detail: map[string]string{
			"target_price": target.String(),
			"direction":    direction,
		},
	}
}

func (e *Evaluator) evaluateRSI(ctx context.Context, alarm entity.Alarm, currentPrice decimal.Decimal, fetch SeriesFetcher) (Result, error) {
	periodFloat, _ := alarm.ParamFloat("period")
	threshold, _ := alarm.ParamFloat("threshold")
	period := int(periodFloat)

	series, err := fetch(ctx, period+1)
	if err != nil {
		return Result{}, err
	}

	rsi, err := indicator.RSI(series.Closes(), period)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Triggered:     rsi.LessThanOrEqual(decimal.NewFromFloat(threshold)),
		ObservedPrice: currentPrice,
		Detail: map[string]string{
			"rsi":       rsi.StringFixed(2),
			"threshold": decimal.NewFromFloat(threshold).String(),
		},
	}, nil
}

func (e *Evaluator) evaluateBollinger(ctx context.Context, alarm entity.Alarm, currentPrice decimal.Decimal, fetch SeriesFetcher) (Result, error) {
	periodFloat, _ := alarm.ParamFloat("period")
	stdDev, _ := alarm.ParamFloat("std_dev")
	period := int(periodFloat)

	series, err := fetch(ctx, period)
	if err != nil {
		return Result{}, err
	}

	upper, lower, err := indicator.BollingerBands(series.Closes(), period, stdDev)
	if err != nil {
		return Result{}, err
	}

	triggered := currentPrice.GreaterThanOrEqual(upper) || currentPrice.LessThanOrEqual(lower)
	return Result{
		Triggered:     triggered,
		ObservedPrice: currentPrice,
		Detail: map[string]string{
			"upper_band": upper.StringFixed(4),
			"lower_band": lower.StringFixed(4),
		},
	}, nil
}
