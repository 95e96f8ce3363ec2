// Package payload reads loosely typed provider JSON and CSV values.
package payload

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Path walks nested objects by key. Missing steps return nil.
func Path(src map[string]any, keys ...string) any {
	var cur any = src
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// Maps returns the object elements of an array value.
func Maps(v any) []map[string]any {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func String(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := AsString(src[key]); s != "" {
			return s
		}
	}
	return ""
}

func AsString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == math.Trunc(typed) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// Int returns the first key holding a number or numeric string.
func Int(src map[string]any, keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := AsInt(src[key]); ok {
			return v, true
		}
	}
	return 0, false
}

func IntPtr(src map[string]any, keys ...string) *int {
	v, ok := Int(src, keys...)
	if !ok {
		return nil
	}
	return &v
}

func AsInt(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, false
		}
		return int(math.Round(typed)), true
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
	"01/02/2006",
	"Jan 2, 2006",
	"Monday, January 2, 2006",
}

// Time parses the date formats seen across providers. Dates without a zone are UTC.
func Time(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var fieldPosition = regexp.MustCompile(`^\s*([A-Za-z&.\- ]*?)\s*(\d{1,2})\s*$`)

// DistanceToGoal converts "ALA 35" style field position into yards from the
// opponent's goal line for offense. Any side other than offense counts as
// the defense's half; a bare number other than 50 is ambiguous and yields nil.
func DistanceToGoal(position, offense string) *int {
	m := fieldPosition.FindStringSubmatch(position)
	if m == nil {
		return nil
	}
	yard, err := strconv.Atoi(m[2])
	if err != nil || yard < 0 || yard > 50 {
		return nil
	}
	side := strings.TrimSpace(m[1])
	switch {
	case yard == 50:
		return &yard
	case side == "":
		return nil
	case strings.EqualFold(side, strings.TrimSpace(offense)):
		v := 100 - yard
		return &v
	default:
		return &yard
	}
}
