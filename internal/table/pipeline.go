package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Result is the processed view of a row set for one state.
type Result[R Row] struct {
	// Rows is the current page.
	Rows []R
	// Filtered is every row surviving search and column filters, sorted.
	Filtered   []R
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// Process runs sort → search → column filters → paginate. rows is never mutated.
func (t *Table[R]) Process(rows []R, s State) Result[R] {
	s = t.Normalize(s)

	filtered := t.filter(t.sort(rows, s), s)

	total := len(filtered)
	pages := 0
	if total > 0 {
		pages = (total + s.PageSize - 1) / s.PageSize
	}
	page := clamp(s.Page, 1, max(pages, 1))

	start := min((page-1)*s.PageSize, total)
	end := min(start+s.PageSize, total)

	return Result[R]{
		Rows:       filtered[start:end:end],
		Filtered:   filtered,
		Total:      total,
		TotalPages: pages,
		Page:       page,
		PageSize:   s.PageSize,
	}
}

// Filtered returns the sorted rows matching the search term and column filters.
func (t *Table[R]) Filtered(rows []R, s State) []R {
	s = t.Normalize(s)
	return t.filter(t.sort(rows, s), s)
}

func (t *Table[R]) sort(rows []R, s State) []R {
	out := slices.Clone(rows)
	if s.SortKey == "" {
		return out
	}
	col, ok := t.column(s.SortKey)
	if !ok {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		va, vb := t.sortValue(col, a), t.sortValue(col, b)
		if va == nil && vb == nil {
			return 0
		}
		// nulls first regardless of direction
		if va == nil {
			return -1
		}
		if vb == nil {
			return 1
		}
		c := Compare(va, vb)
		if s.SortDir == Desc {
			return -c
		}
		return c
	})
	return out
}

func (t *Table[R]) filter(rows []R, s State) []R {
	term := strings.ToLower(strings.TrimSpace(s.Search))
	if term == "" && len(s.Filters) == 0 {
		return rows
	}
	filters := make(map[string]string, len(s.Filters))
	for k, v := range s.Filters {
		filters[k] = strings.ToLower(v)
	}

	out := rows[:0:0]
	for _, r := range rows {
		if term != "" && !t.matchesAny(r, term) {
			continue
		}
		if !t.matchesAll(r, filters) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (t *Table[R]) matchesAny(r R, term string) bool {
	for _, c := range t.cfg.Columns {
		if strings.Contains(strings.ToLower(t.cellText(c, r)), term) {
			return true
		}
	}
	return false
}

func (t *Table[R]) matchesAll(r R, filters map[string]string) bool {
	for key, term := range filters {
		col, ok := t.column(key)
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(t.cellText(col, r)), term) {
			return false
		}
	}
	return true
}

// rawValue is the field value, or the rendered text for synthetic columns.
func (t *Table[R]) rawValue(c Column[R], r R) any {
	if v, ok := r.Field(c.Key); ok {
		return v
	}
	if c.Render != nil {
		return c.Render(r)
	}
	return nil
}

func (t *Table[R]) sortValue(c Column[R], r R) any {
	return t.rawValue(c, r)
}

// cellText is the plain display text of a cell.
func (t *Table[R]) cellText(c Column[R], r R) string {
	if c.Render != nil {
		return c.Render(r)
	}
	return Stringify(t.rawValue(c, r))
}

// Compare orders two non-nil values: numerically when both are numbers,
// otherwise as case-insensitive strings.
func Compare(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return strings.Compare(strings.ToLower(Stringify(a)), strings.ToLower(Stringify(b)))
}

// Stringify renders a cell value the way it is displayed and searched.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
