package source

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// parseDates replaces RFC3339 strings with time.Time, in place for documents
// and arrays.
func parseDates(v any) any {
	switch x := v.(type) {
	case string:
		if t, ok := parseRFC3339(x); ok {
			return t
		}
		return x
	case bson.D:
		for i := range x {
			x[i].Value = parseDates(x[i].Value)
		}
		return x
	case bson.A:
		for i := range x {
			x[i] = parseDates(x[i])
		}
		return x
	case []any:
		for i := range x {
			x[i] = parseDates(x[i])
		}
		return x
	case bson.M:
		for k, e := range x {
			x[k] = parseDates(e)
		}
		return x
	case map[string]any:
		for k, e := range x {
			x[k] = parseDates(e)
		}
		return x
	}
	return v
}

func parseRFC3339(s string) (time.Time, bool) {
	// cheap shape check before time.Parse: YYYY-MM-DDT
	if len(s) < len("2006-01-02T15:04:05Z") || s[4] != '-' || s[7] != '-' || (s[10] != 'T' && s[10] != 't') {
		return time.Time{}, false
	}
	// RFC3339Nano accepts an optional fraction
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, true
		}
		return time.Time{}, false
	}
	return t, true
}
