package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// System field names shared by every table. Application fields carry the "_c"
// suffix and are declared next to the entity that owns them; the backend-assigned
// integer in FieldID is the only identity, never a suffixed field.
const (
	FieldID   = "Id"
	FieldName = "Name"
)

// Record is one raw row as returned by the remote store.
type Record map[string]any

// ID returns the backend-assigned identity, or 0 when absent/invalid.
func (r Record) ID() int {
	return r.Int(FieldID)
}

// String returns the field as a string, "" when absent or of another type.
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// Int coerces the field to int, 0 when absent or non-numeric.
// The backend may hand numbers back as int64 or float64 depending on transport.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// Float coerces the field to float64, 0 when absent or non-numeric.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

// Bool returns the field as bool, false when absent or of another type.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// Decimal coerces the field to a decimal amount, zero when absent.
func (r Record) Decimal(key string) decimal.Decimal {
	switch v := r[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Time parses the field as RFC3339 (the wire form for timestamps) and also
// accepts a native time.Time. Zero time when absent or unparseable.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a shallow copy so callers can mutate safely.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
