package query

import (
	"encoding/json"
	"math"
	"strconv"
)

// FormatCompact renders a counter as "999", "1.5K" or "2.3M".
//
// Anything that is not a number, NaN included, renders as "1".
func FormatCompact(v any) string {
	f, ok := toFloat(v)
	if !ok {
		return "1"
	}
	switch {
	case f >= 1_000_000:
		return strconv.FormatFloat(f/1_000_000, 'f', 1, 64) + "M"
	case f >= 1_000:
		return strconv.FormatFloat(f/1_000, 'f', 1, 64) + "K"
	}
	return strconv.FormatInt(int64(f), 10)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
