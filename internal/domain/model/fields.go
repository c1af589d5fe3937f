package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// stringField reads key as a string. Numbers and booleans are formatted;
// a missing key, JSON null or a nested value yields def.
func stringField(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return def
	}
}

// intField reads key as an integer, truncating toward zero. Numeric strings
// are accepted; anything else yields def.
func intField(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return truncate(t, def)
	case int:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return def
		}
		return truncate(f, def)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return def
		}
		return truncate(f, def)
	default:
		return def
	}
}

func truncate(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return def
	}
	return int(f)
}
