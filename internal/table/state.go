package table

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// Query parameter names of the encoded state.
const (
	paramSort    = "sort"
	paramDir     = "dir"
	paramPage    = "page"
	paramSize    = "size"
	paramSearch  = "q"
	paramFilter  = "f."
	paramConfirm = "confirm"
	paramRow     = "row"
	paramEvent   = "ev"
)

// State is the interaction state owned by one table instance.
type State struct {
	SortKey  string
	SortDir  SortDir
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
	// Pending is set while a confirmation prompt is armed.
	Pending *Invocation
}

// Invocation names an action to run against a row.
type Invocation struct {
	Action string
	RowKey string
}

// Event is an interaction dispatched to Update.
type Event interface{ event() }

type (
	SortClicked     struct{ Key string }
	PageRequested   struct{ Page int }
	PageSizeChanged struct{ Size int }
	SearchChanged   struct{ Term string }
	FilterChanged   struct{ Key, Term string }
	ActionClicked   struct{ Action, RowKey string }
	ConfirmResolved struct{ Accepted bool }
)

func (SortClicked) event()     {}
func (PageRequested) event()   {}
func (PageSizeChanged) event() {}
func (SearchChanged) event()   {}
func (FilterChanged) event()   {}
func (ActionClicked) event()   {}
func (ConfirmResolved) event() {}

// InitialState returns the state of a freshly mounted table.
func (t *Table[R]) InitialState() State {
	return State{SortDir: Asc, Page: 1, PageSize: t.cfg.DefaultPageSize}
}

// Normalize replaces out-of-range values with defaults.
func (t *Table[R]) Normalize(s State) State {
	if s.SortDir != Desc {
		s.SortDir = Asc
	}
	if s.SortKey != "" {
		if c, ok := t.column(s.SortKey); !ok || !c.Sortable {
			s.SortKey = ""
		}
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if !slices.Contains(t.cfg.PageSizes, s.PageSize) {
		s.PageSize = t.cfg.DefaultPageSize
	}
	if !t.cfg.EnableSearch {
		s.Search = ""
	}
	if len(s.Filters) > 0 {
		clean := make(map[string]string, len(s.Filters))
		for k, v := range s.Filters {
			if _, ok := t.column(k); ok && t.cfg.EnableColumnFilters && v != "" {
				clean[k] = v
			}
		}
		s.Filters = clean
	}
	if len(s.Filters) == 0 {
		s.Filters = nil
	}
	return s
}

// Update is the single state transition function of the table. It never mutates s.
// The returned Invocation is non-nil when an action handler must run now.
func (t *Table[R]) Update(rows []R, s State, ev Event) (State, *Invocation) {
	s = t.Normalize(s)
	s.Filters = maps.Clone(s.Filters)

	switch e := ev.(type) {
	case SortClicked:
		col, ok := t.column(e.Key)
		if !ok || !col.Sortable {
			return s, nil
		}
		if s.SortKey != e.Key {
			s.SortKey = e.Key
			s.SortDir = Asc
		} else if s.SortDir == Asc {
			s.SortDir = Desc
		} else {
			s.SortDir = Asc
		}

	case PageRequested:
		total := t.Process(rows, s).TotalPages
		s.Page = clamp(e.Page, 1, max(total, 1))

	case PageSizeChanged:
		if slices.Contains(t.cfg.PageSizes, e.Size) {
			s.PageSize = e.Size
			s.Page = 1
		}

	case SearchChanged:
		if t.cfg.EnableSearch {
			s.Search = strings.TrimSpace(e.Term)
			s.Page = 1
		}

	case FilterChanged:
		if _, ok := t.column(e.Key); ok && t.cfg.EnableColumnFilters {
			term := strings.TrimSpace(e.Term)
			if term == "" {
				delete(s.Filters, e.Key)
			} else {
				if s.Filters == nil {
					s.Filters = map[string]string{}
				}
				s.Filters[e.Key] = term
			}
			s.Page = 1
		}

	case ActionClicked:
		a, ok := t.action(e.Action)
		if !ok {
			return s, nil
		}
		if _, ok := t.findRow(rows, e.RowKey); !ok {
			return s, nil
		}
		inv := &Invocation{Action: e.Action, RowKey: e.RowKey}
		if a.Confirm != nil {
			s.Pending = inv
			return s, nil
		}
		s.Pending = nil
		return s, inv

	case ConfirmResolved:
		inv := s.Pending
		s.Pending = nil
		if inv == nil || !e.Accepted {
			return s, nil
		}
		return s, inv
	}

	if len(s.Filters) == 0 {
		s.Filters = nil
	}
	return s, nil
}

// ParseState decodes a state from query parameters.
func (t *Table[R]) ParseState(q url.Values) State {
	s := State{
		SortKey: q.Get(paramSort),
		SortDir: SortDir(q.Get(paramDir)),
		Search:  q.Get(paramSearch),
	}
	s.Page, _ = strconv.Atoi(q.Get(paramPage))
	s.PageSize, _ = strconv.Atoi(q.Get(paramSize))
	for k, vs := range q {
		if key, ok := strings.CutPrefix(k, paramFilter); ok && len(vs) > 0 {
			if s.Filters == nil {
				s.Filters = map[string]string{}
			}
			s.Filters[key] = vs[0]
		}
	}
	if a := q.Get(paramConfirm); a != "" {
		s.Pending = &Invocation{Action: a, RowKey: q.Get(paramRow)}
	}
	return t.Normalize(s)
}

// EventFromQuery reports the events a GET form submission carries: a new
// search term, new column filters, or a new page size.
func (t *Table[R]) EventFromQuery(q url.Values) []Event {
	switch q.Get(paramEvent) {
	case "search":
		return []Event{SearchChanged{Term: q.Get(paramSearch)}}
	case "filter":
		var evs []Event
		for _, c := range t.cfg.Columns {
			evs = append(evs, FilterChanged{Key: c.Key, Term: q.Get(paramFilter + c.Key)})
		}
		return evs
	case "size":
		size, _ := strconv.Atoi(q.Get(paramSize))
		return []Event{PageSizeChanged{Size: size}}
	}
	return nil
}

// Values encodes s as query parameters. Defaults are omitted.
func (s State) Values() url.Values {
	q := url.Values{}
	if s.SortKey != "" {
		q.Set(paramSort, s.SortKey)
		q.Set(paramDir, string(s.SortDir))
	}
	if s.Page > 1 {
		q.Set(paramPage, strconv.Itoa(s.Page))
	}
	if s.PageSize > 0 {
		q.Set(paramSize, strconv.Itoa(s.PageSize))
	}
	if s.Search != "" {
		q.Set(paramSearch, s.Search)
	}
	for k, v := range s.Filters {
		q.Set(paramFilter+k, v)
	}
	if s.Pending != nil {
		q.Set(paramConfirm, s.Pending.Action)
		q.Set(paramRow, s.Pending.RowKey)
	}
	return q
}

// Encode is Values().Encode().
func (s State) Encode() string {
	return s.Values().Encode()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
