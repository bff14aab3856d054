package table

import (
	"html/template"
	"net/url"
	"slices"
	"strings"
)

const pageWindow = 5

// View is the render model of one table instance.
type View struct {
	Name  string
	Title string
	Base  string

	Headers []HeaderView
	Rows    []RowView
	ColSpan int
	// EmptyMessage is set when no row survives filtering.
	EmptyMessage string

	EnableSearch  bool
	EnableFilters bool
	Search        string
	// Hidden carries the state a GET form must round-trip besides its own field.
	SearchHidden []Param
	FilterHidden []Param
	SizeHidden   []Param

	Pagination PaginationView
	PageSizes  []PageSizeView
	Confirm    *ConfirmView
	ExportHref string
}

type HeaderView struct {
	Key      string
	Label    string
	Sortable bool
	Active   bool
	Dir      SortDir
	Href     string
	Filter   string
}

type RowView struct {
	Key     string
	Href    string
	Cells   []template.HTML
	Actions []ActionView
}

// ActionView renders as a link when Href is set, otherwise as a POST form to Post.
type ActionView struct {
	Name    string
	Label   string
	Href    string
	Post    string
	Confirm bool
}

type PaginationView struct {
	Page       int
	TotalPages int
	Total      int
	PrevHref   string
	NextHref   string
	FirstHref  string
	LastHref   string
	Pages      []PageLink
}

type PageLink struct {
	Number  int
	Href    string
	Current bool
}

type PageSizeView struct {
	Size     int
	Selected bool
}

// ConfirmView is the armed confirmation prompt.
type ConfirmView struct {
	Message    string
	Post       string
	CancelHref string
}

type Param struct {
	Name  string
	Value string
}

// Href returns base with s encoded as its query.
func Href(base string, s State) string {
	q := s.Encode()
	if q == "" {
		return base
	}
	return base + "?" + q
}

// ActionPath is the POST target of a row action.
func ActionPath(base, action, rowKey string, s State) string {
	s.Pending = nil
	return Href(base+"/actions/"+url.PathEscape(action)+"/"+url.PathEscape(rowKey), s)
}

// ConfirmPath is the POST target resolving an armed confirmation.
func ConfirmPath(base string, s State) string {
	return Href(base+"/confirm", s)
}

// ExportPath is the download link of the filtered rows.
func ExportPath(base string, s State) string {
	s.Pending = nil
	return Href(base+"/export", s)
}

// View builds the render model for rows under s. base is the page path.
func (t *Table[R]) View(base string, rows []R, s State) View {
	s = t.Normalize(s)
	res := t.Process(rows, s)
	s.Page = res.Page
	// navigation links drop an armed confirmation
	nav := s
	nav.Pending = nil

	v := View{
		Name:          t.cfg.Name,
		Title:         t.cfg.Title,
		Base:          base,
		ColSpan:       len(t.cfg.Columns),
		EnableSearch:  t.cfg.EnableSearch,
		EnableFilters: t.cfg.EnableColumnFilters,
		Search:        s.Search,
	}
	if len(t.cfg.Actions) > 0 {
		v.ColSpan++
	}

	for _, c := range t.cfg.Columns {
		h := HeaderView{Key: c.Key, Label: c.Label, Sortable: c.Sortable, Filter: s.Filters[c.Key]}
		if c.Sortable {
			next, _ := t.Update(rows, nav, SortClicked{Key: c.Key})
			h.Href = Href(base, next)
			h.Active = s.SortKey == c.Key
			h.Dir = s.SortDir
		}
		v.Headers = append(v.Headers, h)
	}

	if len(res.Rows) == 0 {
		v.EmptyMessage = t.cfg.NoDataMessage
	}
	for _, r := range res.Rows {
		v.Rows = append(v.Rows, t.rowView(base, r, nav))
	}

	v.Pagination = t.pagination(base, rows, nav, res)
	for _, size := range t.cfg.PageSizes {
		v.PageSizes = append(v.PageSizes, PageSizeView{Size: size, Selected: size == s.PageSize})
	}

	v.SearchHidden = hidden(s, func(k string) bool { return k == paramSearch })
	v.FilterHidden = hidden(s, func(k string) bool { return strings.HasPrefix(k, paramFilter) })
	v.SizeHidden = hidden(s, func(k string) bool { return k == paramSize })

	if s.Pending != nil {
		v.Confirm = t.confirmView(base, rows, s)
	}
	if t.cfg.ExportFileName != "" {
		v.ExportHref = ExportPath(base, s)
	}
	return v
}

func (t *Table[R]) rowView(base string, r R, s State) RowView {
	rv := RowView{Key: t.cfg.RowKey(r)}
	if t.cfg.RowHref != nil {
		rv.Href = t.cfg.RowHref(r)
	}
	for _, c := range t.cfg.Columns {
		rv.Cells = append(rv.Cells, t.cellHTML(c, r))
	}
	for _, a := range t.cfg.Actions {
		av := ActionView{Name: a.Name, Label: a.Label, Confirm: a.Confirm != nil}
		if a.Href != nil {
			av.Href = a.Href(r)
		} else {
			av.Post = ActionPath(base, a.Name, rv.Key, s)
		}
		rv.Actions = append(rv.Actions, av)
	}
	return rv
}

func (t *Table[R]) cellHTML(c Column[R], r R) template.HTML {
	if c.RenderHTML != nil {
		return template.HTML(t.policy.Sanitize(c.RenderHTML(r)))
	}
	return template.HTML(template.HTMLEscapeString(t.cellText(c, r)))
}

func (t *Table[R]) pagination(base string, rows []R, s State, res Result[R]) PaginationView {
	p := PaginationView{Page: res.Page, TotalPages: res.TotalPages, Total: res.Total}
	link := func(n int) string {
		next, _ := t.Update(rows, s, PageRequested{Page: n})
		return Href(base, next)
	}
	if res.TotalPages == 0 {
		return p
	}
	if res.Page > 1 {
		p.PrevHref = link(res.Page - 1)
		p.FirstHref = link(1)
	}
	if res.Page < res.TotalPages {
		p.NextHref = link(res.Page + 1)
		p.LastHref = link(res.TotalPages)
	}
	lo := max(1, res.Page-pageWindow/2)
	hi := min(res.TotalPages, lo+pageWindow-1)
	lo = max(1, hi-pageWindow+1)
	for n := lo; n <= hi; n++ {
		p.Pages = append(p.Pages, PageLink{Number: n, Href: link(n), Current: n == res.Page})
	}
	return p
}

func (t *Table[R]) confirmView(base string, rows []R, s State) *ConfirmView {
	a, ok := t.action(s.Pending.Action)
	if !ok || a.Confirm == nil {
		return nil
	}
	row, ok := t.findRow(rows, s.Pending.RowKey)
	if !ok {
		return nil
	}
	msg := a.Confirm.Message
	if a.ConfirmFor != nil {
		msg = a.ConfirmFor(row)
	}
	if msg == "" {
		msg = DefaultConfirmMessage
	}
	cancelled, _ := t.Update(rows, s, ConfirmResolved{Accepted: false})
	return &ConfirmView{
		Message:    msg,
		Post:       ConfirmPath(base, s),
		CancelHref: Href(base, cancelled),
	}
}

// hidden lists the encoded state minus page and the params skip reports.
func hidden(s State, skip func(string) bool) []Param {
	s.Pending = nil
	q := s.Values()
	var out []Param
	for k, vs := range q {
		if k == paramPage || skip(k) || len(vs) == 0 {
			continue
		}
		out = append(out, Param{Name: k, Value: vs[0]})
	}
	slices.SortFunc(out, func(a, b Param) int { return strings.Compare(a.Name, b.Name) })
	return out
}
