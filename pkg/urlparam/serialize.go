package urlparam

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultSerializer returns the serializer used by Param for T.
// Strings pass through, numbers and bools use strconv, string slices join
// on commas, and anything else round-trips through JSON.
func DefaultSerializer[T any]() func(T) string {
	return func(v T) string {
		switch val := any(v).(type) {
		case string:
			return val
		case int:
			return strconv.Itoa(val)
		case int64:
			return strconv.FormatInt(val, 10)
		case float64:
			return strconv.FormatFloat(val, 'g', -1, 64)
		case bool:
			return strconv.FormatBool(val)
		case []string:
			return strings.Join(val, ",")
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return ""
			}
			return string(b)
		}
	}
}

// DefaultDeserializer returns the deserializer used by Param for T.
// It is the inverse of DefaultSerializer; a parse failure reports an error
// so the caller can fall back to its configured default.
func DefaultDeserializer[T any]() func(string) (T, error) {
	return func(s string) (T, error) {
		var zero T
		switch any(zero).(type) {
		case string:
			return any(s).(T), nil
		case int:
			i, err := strconv.Atoi(s)
			if err != nil {
				return zero, err
			}
			return any(i).(T), nil
		case int64:
			i, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return zero, err
			}
			return any(i).(T), nil
		case float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return zero, err
			}
			return any(f).(T), nil
		case bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return zero, err
			}
			return any(b).(T), nil
		case []string:
			if s == "" {
				return zero, nil
			}
			return any(strings.Split(s, ",")).(T), nil
		default:
			var v T
			if err := json.Unmarshal([]byte(s), &v); err != nil {
				return zero, err
			}
			return v, nil
		}
	}
}
