package helpers

import (
	"net/http"
	"strconv"
	"time"
)

// DateLayout is the wire format for date query parameters.
const DateLayout = "2006-01-02"

// ParseIDPathValue reads the named path value and parses it as a positive
// int64 identifier.
func ParseIDPathValue(r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ParseDateParam reads a date query parameter in DateLayout, interpreted in
// loc. Missing values fall back to def.
func ParseDateParam(r *http.Request, name string, loc *time.Location, def time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseBoolParam reads a boolean query parameter. Missing or unparsable
// values are false.
func ParseBoolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
