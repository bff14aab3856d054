package form

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	msgRequired = "%s es requerido"
	msgNotANum  = "%s debe ser un número"
	msgMin      = "%s debe ser >= %s"
	msgMax      = "%s debe ser <= %s"
	msgEmail    = "%s debe ser un email válido"
)

// ValidateField runs required, numeric, email and custom rules in that order and
// returns the first failure, or "".
func ValidateField(f Field, v Value, all Values) string {
	if f.Required {
		if f.Type == Checkbox && !v.Truthy() {
			return fmt.Sprintf(msgRequired, f.Label)
		}
		if v.IsBlank() {
			return fmt.Sprintf(msgRequired, f.Label)
		}
	}

	if f.Type == Numeric && !v.IsBlank() {
		n, ok := v.Num()
		if !ok {
			n, ok = parseFinite(strings.TrimSpace(v.String()))
		} else if math.IsNaN(n) || math.IsInf(n, 0) {
			ok = false
		}
		if !ok {
			return fmt.Sprintf(msgNotANum, f.Label)
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Sprintf(msgMin, f.Label, formatBound(*f.Min))
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Sprintf(msgMax, f.Label, formatBound(*f.Max))
		}
	}

	if f.Type == Email && v.Kind() == KindString && v.String() != "" {
		if !emailPattern.MatchString(v.String()) {
			return fmt.Sprintf(msgEmail, f.Label)
		}
	}

	if f.Validate != nil {
		return f.Validate(v, all)
	}
	return ""
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
