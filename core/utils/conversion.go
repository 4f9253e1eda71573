package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ToInt64 converts various types to int64 using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		return parseInt64(v)
	case []byte:
		return parseInt64(string(v))
	default:
		return parseInt64(fmt.Sprintf("%v", v))
	}
}

// countSuffixes are the abbreviations app stores use for large counts ("5M+").
var countSuffixes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// parseInt64 accepts plain, grouped and abbreviated numbers
// ("10,000,000+" and "10M+" both yield 10000000).
func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	if n := len(s); n > 0 {
		if m, ok := countSuffixes[strings.ToUpper(s[n-1:])[0]]; ok {
			multiplier = m
			s = strings.TrimSpace(s[:n-1])
		}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int64(float64(i) * multiplier)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(math.Round(f * multiplier))
	}
	return 0
}

// ToString converts various types to string. Nil pointers become the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case *int64:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	case *float64:
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// timestampLayouts are tried in order for string timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ToEpochSeconds normalizes a timestamp to Unix seconds.
// Numbers (and numeric strings) are read as epoch milliseconds; other strings are
// parsed as ISO-8601 dates, falling back to the long-form dates app stores display.
func ToEpochSeconds(val any) (int64, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case time.Time:
		return v.Unix(), !v.IsZero()
	case int, int64, int32, uint, uint64, uint32:
		return ToInt64(v) / 1000, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v) / 1000, true
	case float32:
		return int64(v) / 1000, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ms / 1000, true
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Unix(), true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
