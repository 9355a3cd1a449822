package layout

import (
	"math"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// ToFixed converts a board coordinate to int16 tenths, truncating toward zero.
func ToFixed(v float64) (int16, error) {
	scaled := v * 10
	if math.IsNaN(scaled) || scaled <= math.MinInt16-1 || scaled >= math.MaxInt16+1 {
		return 0, stgyerrors.Validationf("coordinate", "%v is outside the int16 tenths range", v)
	}
	return int16(scaled), nil
}

// FromFixed converts int16 tenths to a board coordinate.
func FromFixed(v int16) float64 {
	return float64(v) / 10
}
