package store

import (
	"math"
	"strconv"
)

// FormatCount renders n for compact display: values below 1000 pass through,
// thousands get one decimal and a K suffix, millions an M suffix.
// The unit is picked before rounding, so 999950 renders as "1000.0K".
func FormatCount(n float64) string {
	if math.IsNaN(n) || n == 0 {
		return "0"
	}

	abs := math.Abs(n)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(n/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(n/1e3, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func FormatInt(n int) string {
	return FormatCount(float64(n))
}
