package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/okian/incentivo/internal/domain/model"
)

// Coerce converts a loosely typed score into a finite number. ok is false when
// the value means "not entered" (nil or a blank string). Anything else that is
// not numeric, including NaN and infinities, becomes 0.
func Coerce(v any) (score float64, ok bool) {
	score, ok = coerce(v)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}
	return score, ok
}

func coerce(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, true
		}
		return f, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, true
		}
		return f, true
	default:
		return 0, true
	}
}

// ParseEvaluations coerces raw input into clamped evaluations, dropping entries
// that were not entered. The result is never nil.
func ParseEvaluations(raw map[string]any) model.Evaluations {
	out := make(model.Evaluations, len(raw))
	for name, v := range raw {
		if score, ok := Coerce(v); ok {
			out[name] = Clamp(score)
		}
	}
	return out
}
