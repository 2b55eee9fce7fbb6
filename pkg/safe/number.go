// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Int converts a JSON number to int, rejecting NaN, infinities, fractions and values
// outside the int range.
func Int(v float64) (int, error) {
	if err := integral(v); err != nil {
		return 0, err
	}
	if v < math.MinInt || v >= -math.MinInt {
		return 0, fmt.Errorf("value %v out of int range", v)
	}
	return int(v), nil
}


func integral(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("value %v is not finite", v)
	}
	if v != math.Trunc(v) {
		return fmt.Errorf("value %v is not integral", v)
	}
	return nil
}
