package evaluator

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ahmet872/Alarm-System/internal/entity"
)

var ErrInvalidParams = errors.New("invalid alarm params")

const (
	DirectionAbove = "above"
	DirectionBelow = "below"
)

// ValidateParams checks the param set required by an alarm type. The
// creation boundary runs this on user input; the evaluator runs it again
// defensively before trusting a stored row.
func ValidateParams(alarm entity.Alarm) error {
	switch alarm.AlarmType {
	case entity.AlarmTypePrice:
		target, ok := alarm.ParamFloat("target_price")
		if !ok {
			return fmt.Errorf("%w: price alarm requires target_price", ErrInvalidParams)
		}
		if target <= 0 {
			return fmt.Errorf("%w: target_price must be positive, got %v", ErrInvalidParams, target)
		}
		if _, ok := alarm.Params["direction"]; ok {
			dir, strOk := alarm.ParamString("direction")
			if !strOk || (dir != DirectionAbove && dir != DirectionBelow) {
				return fmt.Errorf("%w: direction must be %q or %q", ErrInvalidParams, DirectionAbove, DirectionBelow)
			}
		}
		return nil

	case entity.AlarmTypeRSI:
		if err := validatePeriod(alarm); err != nil {
			return err
		}
		threshold, ok := alarm.ParamFloat("threshold")
		if !ok {
			return fmt.Errorf("%w: rsi alarm requires threshold", ErrInvalidParams)
		}
		if threshold < 0 || threshold > 100 {
			return fmt.Errorf("%w: threshold must be between 0 and 100, got %v", ErrInvalidParams, threshold)
		}
		return nil

	case entity.AlarmTypeBollinger:
		if err := validatePeriod(alarm); err != nil {
			return err
		}
		stdDev, ok := alarm.ParamFloat("std_dev")
		if !ok {
			return fmt.Errorf("%w: bollinger alarm requires std_dev", ErrInvalidParams)
		}
		if stdDev <= 0 {
			return fmt.Errorf("%w: std_dev must be positive, got %v", ErrInvalidParams, stdDev)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown alarm type %q", ErrInvalidParams, alarm.AlarmType)
	}
}

func validatePeriod(alarm entity.Alarm) error {
	period, ok := alarm.ParamFloat("period")
	if !ok {
		return fmt.Errorf("%w: %s alarm requires period", ErrInvalidParams, alarm.AlarmType)
	}
	if period <= 0 || period != math.Trunc(period) {
		return fmt.Errorf("%w: period must be a positive integer, got %v", ErrInvalidParams, period)
	}
	return nil
}

// Direction resolves the price alarm direction, defaulting to above.
func Direction(alarm entity.Alarm) string {
	if dir, ok := alarm.ParamString("direction"); ok && dir == DirectionBelow {
		return DirectionBelow
	}
	return DirectionAbove
}
