package catalog

import (
	"html"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"retail-admin-web/internal/model"
)

// Locale used for every displayed and exported number.
var Locale = language.MustParse("es-CO")

// FormatNumber renders a numeric cell with es-CO grouping, e.g. 14000 → "14.000".
// Non-numeric values render as "".
func FormatNumber(v any) string {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return ""
	}
	return message.NewPrinter(Locale).Sprint(number.Decimal(f))
}

// FormatMoney renders a price in pesos.
func FormatMoney(v any) string {
	s := FormatNumber(v)
	if s == "" {
		return ""
	}
	return "$ " + s
}

// badge is the markup of a status pill. text is escaped; the table sanitizes the rest.
func badge(kind, text string) string {
	return `<span class="badge badge-` + kind + `">` + html.EscapeString(text) + `</span>`
}

// StockBadge shows the units left, or "Agotado" when none are.
func StockBadge(p model.Product) string {
	if p.Cantidad <= 0 {
		return badge("out", "Agotado")
	}
	return badge("in", FormatNumber(p.Cantidad))
}

// RoleBadge shows the role name of a user, colored for the known roles.
func RoleBadge(u model.User) string {
	switch r := u.Role(); r {
	case model.RoleAdmin, model.RoleUser:
		return badge("role-"+strings.ToLower(string(r)), u.RoleNombre)
	}
	return badge("role", u.RoleNombre)
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	}
	return 0, false
}
