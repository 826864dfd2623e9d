package brands

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Document is a loosely typed store document. Values are whatever the
// decoder produced: strings, json.Number or native numbers, booleans, nil,
// nested maps and slices, bson.ObjectID identifiers and time values.
type Document map[string]any

// Clone returns a deep copy of the document's maps and slices.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[k] = cloneValue(inner)
		}
		return m
	case Document:
		return val.Clone()
	case []any:
		s := make([]any, len(val))
		for i, inner := range val {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// IntValue converts an already numeric value to an int. Strings are not
// parsed; use it for values that must already be integers in a canonical
// document.
func IntValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// TimeValue reads a timestamp stored natively, as an RFC 3339 string, or as
// an extended JSON {"$date": ...} wrapper.
func TimeValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case map[string]any:
		if inner, ok := t["$date"]; ok {
			switch d := inner.(type) {
			case string:
				return TimeValue(d)
			case json.Number:
				ms, err := d.Int64()
				if err != nil {
					return time.Time{}, false
				}
				return time.UnixMilli(ms).UTC(), true
			case map[string]any:
				if n, ok := d["$numberLong"].(string); ok {
					ms, err := strconv.ParseInt(n, 10, 64)
					if err != nil {
						return time.Time{}, false
					}
					return time.UnixMilli(ms).UTC(), true
				}
			}
		}
	}
	return time.Time{}, false
}

// StringForm renders a scalar the way a loosely typed runtime converts it
// to text before numeric parsing. Objects render as "[object Object]" and
// arrays join their elements with commas; nil renders as "null".
func StringForm(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return val.String()
		}
		f, err := val.Float64()
		if err != nil {
			return val.String()
		}
		return numberForm(f)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return numberForm(float64(val))
	case float64:
		return numberForm(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			if elem == nil {
				continue
			}
			parts[i] = StringForm(elem)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func numberForm(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
