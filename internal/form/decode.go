package form

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Decode reads the submitted values of every field from a posted form.
// Checkboxes are true when present. Select values are coerced to bool when any
// option is boolean, else to a number when they parse as one. Number inputs
// that do not parse stay strings so validation can reject them.
func (f *Form) Decode(q url.Values) Values {
	out := make(Values, len(f.schema.Fields))
	for _, fd := range f.schema.Fields {
		raw := q.Get(fd.Name)
		switch fd.Type {
		case Checkbox:
			_, present := q[fd.Name]
			out[fd.Name] = Bool(present && raw != "false")
		case Select:
			out[fd.Name] = coerceOption(fd, raw)
		case Numeric:
			out[fd.Name] = coerceNumber(raw)
		default:
			out[fd.Name] = String(raw)
		}
	}
	return out
}

func coerceOption(fd Field, raw string) Value {
	if raw == "" {
		return String("")
	}
	if fd.hasBoolOptions() {
		return Bool(raw == "true")
	}
	if n, ok := parseFinite(raw); ok {
		return Number(n)
	}
	return String(raw)
}

func coerceNumber(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return String("")
	}
	if n, ok := parseFinite(trimmed); ok {
		return Number(n)
	}
	return String(raw)
}

// parseFinite parses s as a float, rejecting NaN and the infinities.
func parseFinite(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
