package table_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"retail-admin-web/internal/table"
)

type item struct {
	ID   any
	Name any
}

func (i item) Field(key string) (any, bool) {
	switch key {
	case "id":
		return i.ID, true
	case "name":
		return i.Name, true
	}
	return nil, false
}

func newTable(t *testing.T, mutate func(*table.Config[item])) *table.Table[item] {
	t.Helper()
	cfg := table.Config[item]{
		Name: "items",
		Columns: []table.Column[item]{
			{Key: "id", Label: "ID", Sortable: true},
			{Key: "name", Label: "Nombre", Sortable: true},
		},
		RowKey:              func(i item) string { return fmt.Sprint(i.ID) },
		EnableSearch:        true,
		EnableColumnFilters: true,
		PageSizes:           []int{2, 5, 10},
		DefaultPageSize:     10,
		ExportFileName:      "items",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	tb, err := table.New(cfg)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tb
}

func ids(rows []item) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("No columns", func(t *testing.T) {
		_, err := table.New(table.Config[item]{RowKey: func(item) string { return "" }})
		if !errors.Is(err, table.ErrNoColumns) {
			t.Errorf("expected ErrNoColumns, got %v", err)
		}
	})
	t.Run("Duplicate column", func(t *testing.T) {
		_, err := table.New(table.Config[item]{
			Columns: []table.Column[item]{{Key: "id"}, {Key: "id"}},
			RowKey:  func(item) string { return "" },
		})
		if !errors.Is(err, table.ErrDuplicateColumn) {
			t.Errorf("expected ErrDuplicateColumn, got %v", err)
		}
	})
	t.Run("Default page size falls back to first option", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) { c.DefaultPageSize = 7 })
		if got := tb.InitialState().PageSize; got != 2 {
			t.Errorf("expected page size 2, got %d", got)
		}
	})
}

func TestSortScenario(t *testing.T) {
	tb := newTable(t, nil)
	rows := []item{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}

	s, _ := tb.Update(rows, tb.InitialState(), table.SortClicked{Key: "id"})
	if s.SortKey != "id" || s.SortDir != table.Asc {
		t.Fatalf("unexpected state %+v", s)
	}
	got := tb.Process(rows, s).Rows
	want := []item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sorted rows mismatch (-want +got):\n%s", diff)
	}
	if rows[0].ID != 2 {
		t.Errorf("input rows were mutated")
	}
}

func TestSortToggle(t *testing.T) {
	tb := newTable(t, nil)
	rows := []item{{ID: 3, Name: "c"}, {ID: 1, Name: "B"}, {ID: 10, Name: "a"}, {ID: 2, Name: "D"}}

	asc, _ := tb.Update(rows, tb.InitialState(), table.SortClicked{Key: "id"})
	desc, _ := tb.Update(rows, asc, table.SortClicked{Key: "id"})
	if desc.SortDir != table.Desc {
		t.Fatalf("expected desc, got %s", desc.SortDir)
	}

	up := ids(tb.Process(rows, asc).Rows)
	down := ids(tb.Process(rows, desc).Rows)
	if diff := cmp.Diff([]any{1, 2, 3, 10}, up); diff != "" {
		t.Errorf("numeric asc mismatch (-want +got):\n%s", diff)
	}
	if len(up) != len(rows) || len(down) != len(rows) {
		t.Fatalf("row count changed")
	}
	for i := range up {
		if up[i] != down[len(down)-1-i] {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", up, down)
		}
	}

	byName, _ := tb.Update(rows, desc, table.SortClicked{Key: "name"})
	if byName.SortKey != "name" || byName.SortDir != table.Asc {
		t.Errorf("switching column must reset to asc, got %+v", byName)
	}
	names := tb.Process(rows, byName).Rows
	if names[0].Name != "a" || names[1].Name != "B" {
		t.Errorf("expected case-insensitive order, got %v", names)
	}
}

func TestSortNullsFirst(t *testing.T) {
	tb := newTable(t, nil)
	rows := []item{{ID: 2, Name: "x"}, {ID: nil, Name: "y"}, {ID: 1, Name: "z"}}

	asc, _ := tb.Update(rows, tb.InitialState(), table.SortClicked{Key: "id"})
	desc, _ := tb.Update(rows, asc, table.SortClicked{Key: "id"})

	for _, s := range []table.State{asc, desc} {
		got := tb.Process(rows, s).Rows
		if got[0].ID != nil {
			t.Errorf("%s: expected null first, got %v", s.SortDir, ids(got))
		}
	}
}

func TestSortNotSortable(t *testing.T) {
	tb := newTable(t, func(c *table.Config[item]) { c.Columns[1].Sortable = false })
	s, _ := tb.Update(nil, tb.InitialState(), table.SortClicked{Key: "name"})
	if s.SortKey != "" {
		t.Errorf("non-sortable column must be ignored, got %q", s.SortKey)
	}
}

func TestSearchAndFilter(t *testing.T) {
	tb := newTable(t, nil)
	rows := []item{
		{ID: 1, Name: "Dolex Forte"},
		{ID: 2, Name: "Acetaminofén"},
		{ID: 12, Name: "dolor cero"},
		{ID: 3, Name: nil},
	}

	t.Run("Search matches any column", func(t *testing.T) {
		s, _ := tb.Update(rows, tb.InitialState(), table.SearchChanged{Term: "DOL"})
		got := tb.Process(rows, s).Filtered
		if diff := cmp.Diff([]any{1, 12}, ids(got)); diff != "" {
			t.Errorf("search mismatch (-want +got):\n%s", diff)
		}

		s, _ = tb.Update(rows, tb.InitialState(), table.SearchChanged{Term: "2"})
		got = tb.Process(rows, s).Filtered
		if diff := cmp.Diff([]any{2, 12}, ids(got)); diff != "" {
			t.Errorf("search on id mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Column filters combine with AND", func(t *testing.T) {
		s, _ := tb.Update(rows, tb.InitialState(), table.FilterChanged{Key: "name", Term: "dol"})
		s, _ = tb.Update(rows, s, table.FilterChanged{Key: "id", Term: "1"})
		got := tb.Process(rows, s).Filtered
		if diff := cmp.Diff([]any{1, 12}, ids(got)); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
		s, _ = tb.Update(rows, s, table.FilterChanged{Key: "id", Term: "12"})
		got = tb.Process(rows, s).Filtered
		if diff := cmp.Diff([]any{12}, ids(got)); diff != "" {
			t.Errorf("filter mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Every kept row matches and every dropped row fails", func(t *testing.T) {
		for _, term := range []string{"o", "FORTE", "1", "zz", "é"} {
			s, _ := tb.Update(rows, tb.InitialState(), table.SearchChanged{Term: term})
			kept := map[any]bool{}
			for _, r := range tb.Process(rows, s).Filtered {
				kept[r.ID] = true
			}
			for _, r := range rows {
				match := strings.Contains(strings.ToLower(table.Stringify(r.ID)), strings.ToLower(term)) ||
					strings.Contains(strings.ToLower(table.Stringify(r.Name)), strings.ToLower(term))
				if match != kept[r.ID] {
					t.Errorf("term %q row %v: match=%v kept=%v", term, r.ID, match, kept[r.ID])
				}
			}
		}
	})

	t.Run("Clearing a filter removes it", func(t *testing.T) {
		s, _ := tb.Update(rows, tb.InitialState(), table.FilterChanged{Key: "name", Term: "dol"})
		s, _ = tb.Update(rows, s, table.FilterChanged{Key: "name", Term: "  "})
		if s.Filters != nil {
			t.Errorf("expected no filters, got %v", s.Filters)
		}
	})
}

func TestPagination(t *testing.T) {
	tb := newTable(t, nil)

	for _, n := range []int{0, 1, 2, 5, 9, 10, 11, 23} {
		rows := make([]item, n)
		for i := range rows {
			rows[i] = item{ID: i, Name: fmt.Sprintf("row %d", i)}
		}
		for _, size := range []int{2, 5, 10} {
			s, _ := tb.Update(rows, tb.InitialState(), table.PageSizeChanged{Size: size})
			res := tb.Process(rows, s)
			want := (n + size - 1) / size
			if res.TotalPages != want {
				t.Errorf("n=%d size=%d: expected %d pages, got %d", n, size, want, res.TotalPages)
			}
			var all []item
			for p := 1; p <= res.TotalPages; p++ {
				s, _ = tb.Update(rows, s, table.PageRequested{Page: p})
				all = append(all, tb.Process(rows, s).Rows...)
			}
			if len(all) != n {
				t.Fatalf("n=%d size=%d: pages hold %d rows", n, size, len(all))
			}
			for i, r := range all {
				if r.ID != i {
					t.Fatalf("n=%d size=%d: row %d out of order", n, size, i)
				}
			}
		}
	}
}

func TestPageClampAndReset(t *testing.T) {
	tb := newTable(t, nil)
	rows := make([]item, 7)
	for i := range rows {
		rows[i] = item{ID: i, Name: "x"}
	}
	s, _ := tb.Update(rows, tb.InitialState(), table.PageSizeChanged{Size: 2})

	s, _ = tb.Update(rows, s, table.PageRequested{Page: 99})
	if s.Page != 4 {
		t.Errorf("expected clamp to 4, got %d", s.Page)
	}
	low, _ := tb.Update(rows, s, table.PageRequested{Page: -3})
	if low.Page != 1 {
		t.Errorf("expected clamp to 1, got %d", low.Page)
	}

	for name, ev := range map[string]table.Event{
		"search": table.SearchChanged{Term: "x"},
		"filter": table.FilterChanged{Key: "name", Term: "x"},
		"size":   table.PageSizeChanged{Size: 5},
	} {
		next, _ := tb.Update(rows, s, ev)
		if next.Page != 1 {
			t.Errorf("%s: expected page reset to 1, got %d", name, next.Page)
		}
	}

	bad, _ := tb.Update(rows, s, table.PageSizeChanged{Size: 3})
	if bad.PageSize != 2 || bad.Page != 4 {
		t.Errorf("unknown page size must be ignored, got %+v", bad)
	}
}

func TestRowActions(t *testing.T) {
	rows := []item{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	var deleted, viewed []string
	tb := newTable(t, func(c *table.Config[item]) {
		c.Actions = []table.Action[item]{
			{
				Name:    "delete",
				Label:   "Eliminar",
				Confirm: &table.Confirm{Message: "¿Eliminar?"},
				OnClick: func(_ context.Context, r item) error {
					deleted = append(deleted, fmt.Sprint(r.ID))
					return nil
				},
			},
			{
				Name:  "view",
				Label: "Ver",
				OnClick: func(_ context.Context, r item) error {
					viewed = append(viewed, fmt.Sprint(r.ID))
					return nil
				},
			},
		}
	})
	ctx := context.Background()

	t.Run("Without confirmation runs at once", func(t *testing.T) {
		s, err := tb.Dispatch(ctx, rows, tb.InitialState(), table.ActionClicked{Action: "view", RowKey: "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Pending != nil || len(viewed) != 1 || viewed[0] != "2" {
			t.Errorf("unexpected outcome: pending=%v viewed=%v", s.Pending, viewed)
		}
	})

	t.Run("Confirmation arms then cancels", func(t *testing.T) {
		armed, err := tb.Dispatch(ctx, rows, tb.InitialState(), table.ActionClicked{Action: "delete", RowKey: "1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(&table.Invocation{Action: "delete", RowKey: "1"}, armed.Pending); diff != "" {
			t.Fatalf("pending mismatch (-want +got):\n%s", diff)
		}
		if len(deleted) != 0 {
			t.Fatalf("handler ran before confirmation")
		}
		cancelled, _ := tb.Dispatch(ctx, rows, armed, table.ConfirmResolved{Accepted: false})
		if cancelled.Pending != nil || len(deleted) != 0 {
			t.Errorf("cancel must disarm without running the handler")
		}
	})

	t.Run("Confirmation accepted runs once", func(t *testing.T) {
		armed, _ := tb.Dispatch(ctx, rows, tb.InitialState(), table.ActionClicked{Action: "delete", RowKey: "1"})
		done, _ := tb.Dispatch(ctx, rows, armed, table.ConfirmResolved{Accepted: true})
		if done.Pending != nil || len(deleted) != 1 || deleted[0] != "1" {
			t.Errorf("unexpected outcome: pending=%v deleted=%v", done.Pending, deleted)
		}
		again, _ := tb.Dispatch(ctx, rows, done, table.ConfirmResolved{Accepted: true})
		if again.Pending != nil || len(deleted) != 1 {
			t.Errorf("resolving without an armed prompt must do nothing")
		}
	})

	t.Run("Unknown row is ignored", func(t *testing.T) {
		s, inv := tb.Update(rows, tb.InitialState(), table.ActionClicked{Action: "view", RowKey: "404"})
		if inv != nil || s.Pending != nil {
			t.Errorf("expected no invocation for unknown row")
		}
	})

	t.Run("Handler error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		failing := newTable(t, func(c *table.Config[item]) {
			c.Actions = []table.Action[item]{{Name: "x", OnClick: func(context.Context, item) error { return boom }}}
		})
		_, err := failing.Dispatch(ctx, rows, failing.InitialState(), table.ActionClicked{Action: "x", RowKey: "1"})
		if !errors.Is(err, boom) {
			t.Errorf("expected handler error, got %v", err)
		}
	})
}

func TestExport(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

	t.Run("Nothing to export", func(t *testing.T) {
		tb := newTable(t, nil)
		rows := []item{{ID: 1, Name: "A"}}
		s, _ := tb.Update(rows, tb.InitialState(), table.SearchChanged{Term: "zzz"})
		_, err := tb.Export(rows, s, now)
		if !errors.Is(err, table.ErrNothingToExport) {
			t.Errorf("expected ErrNothingToExport, got %v", err)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) { c.ExportFileName = "" })
		_, err := tb.Export([]item{{ID: 1}}, tb.InitialState(), now)
		if !errors.Is(err, table.ErrExportDisabled) {
			t.Errorf("expected ErrExportDisabled, got %v", err)
		}
	})

	t.Run("Filtered rows with labels and formats", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) {
			c.Columns[0].ExportLabel = "Código"
			c.Columns[0].ExportFormat = func(v any) string { return fmt.Sprintf("#%v", v) }
			c.ExportMaxColWidth = 12
		})
		rows := make([]item, 15)
		for i := range rows {
			rows[i] = item{ID: i + 1, Name: fmt.Sprintf("producto %d", i+1)}
		}
		rows[14].Name = "un nombre bastante largo para la columna"
		s, _ := tb.Update(rows, tb.InitialState(), table.PageSizeChanged{Size: 2})
		s, _ = tb.Update(rows, s, table.SearchChanged{Term: "1"})

		file, err := tb.Export(rows, s, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if file.Name != "items_2026-03-09.xlsx" {
			t.Errorf("unexpected file name %q", file.Name)
		}

		f, err := excelize.OpenReader(bytes.NewReader(file.Data))
		if err != nil {
			t.Fatalf("open workbook: %v", err)
		}
		defer f.Close()

		got, err := f.GetRows(table.ExportSheet)
		if err != nil {
			t.Fatalf("GetRows: %v", err)
		}
		// all matches, not just the current page
		want := [][]string{
			{"Código", "Nombre"},
			{"#1", "producto 1"},
			{"#10", "producto 10"},
			{"#11", "producto 11"},
			{"#12", "producto 12"},
			{"#13", "producto 13"},
			{"#14", "producto 14"},
			{"#15", "un nombre bastante largo para la columna"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("sheet mismatch (-want +got):\n%s", diff)
		}

		width, err := f.GetColWidth(table.ExportSheet, "B")
		if err != nil {
			t.Fatalf("GetColWidth: %v", err)
		}
		if width != 12 {
			t.Errorf("expected capped width 12, got %v", width)
		}
	})
}

func TestExportWidth(t *testing.T) {
	if got := table.ExportWidth("Nombre", []string{"a", "abcdefghij"}, 50); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if got := table.ExportWidth("Descripción larga", nil, 50); got != 17 {
		t.Errorf("expected label width 17, got %d", got)
	}
	if got := table.ExportWidth("x", []string{strings.Repeat("y", 80)}, 50); got != 50 {
		t.Errorf("expected cap 50, got %d", got)
	}
}

func TestView(t *testing.T) {
	t.Run("Empty placeholder spans all columns", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) {
			c.NoDataMessage = "Sin productos"
			c.Actions = []table.Action[item]{{Name: "del", Label: "Eliminar", OnClick: func(context.Context, item) error { return nil }}}
		})
		v := tb.View("/admin/items", nil, tb.InitialState())
		if v.EmptyMessage != "Sin productos" || len(v.Rows) != 0 || v.ColSpan != 3 {
			t.Errorf("unexpected empty view: msg=%q rows=%d colspan=%d", v.EmptyMessage, len(v.Rows), v.ColSpan)
		}
	})

	t.Run("Cells are escaped or sanitized", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) {
			c.Columns = append(c.Columns, table.Column[item]{
				Key:        "badge",
				Label:      "Estado",
				RenderHTML: func(i item) string { return `<b>ok</b><script>alert(1)</script>` },
			})
		})
		v := tb.View("/admin/items", []item{{ID: 1, Name: "<i>x</i>"}}, tb.InitialState())
		cells := v.Rows[0].Cells
		if string(cells[1]) != "&lt;i&gt;x&lt;/i&gt;" {
			t.Errorf("text cell not escaped: %s", cells[1])
		}
		if string(cells[2]) != "<b>ok</b>" {
			t.Errorf("html cell not sanitized: %s", cells[2])
		}
	})

	t.Run("Badges keep their class only", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) {
			c.Columns = append(c.Columns, table.Column[item]{
				Key:        "badge",
				Label:      "Estado",
				RenderHTML: func(i item) string { return `<span class="badge badge-out" onclick="x()" style="color:red">Agotado</span>` },
			})
		})
		v := tb.View("/admin/items", []item{{ID: 1, Name: "a"}}, tb.InitialState())
		if got := string(v.Rows[0].Cells[2]); got != `<span class="badge badge-out">Agotado</span>` {
			t.Errorf("unexpected badge markup: %s", got)
		}
	})

	t.Run("Links carry the next state", func(t *testing.T) {
		tb := newTable(t, nil)
		rows := make([]item, 5)
		for i := range rows {
			rows[i] = item{ID: i, Name: "n"}
		}
		s, _ := tb.Update(rows, tb.InitialState(), table.PageSizeChanged{Size: 2})
		v := tb.View("/x", rows, s)
		if v.Headers[0].Href != "/x?dir=asc&size=2&sort=id" {
			t.Errorf("unexpected sort href %q", v.Headers[0].Href)
		}
		if v.Pagination.NextHref != "/x?page=2&size=2" || v.Pagination.PrevHref != "" {
			t.Errorf("unexpected pagination %+v", v.Pagination)
		}
		if v.ExportHref != "/x/export?size=2" {
			t.Errorf("unexpected export href %q", v.ExportHref)
		}
	})

	t.Run("Armed confirmation renders a prompt", func(t *testing.T) {
		tb := newTable(t, func(c *table.Config[item]) {
			c.Actions = []table.Action[item]{{Name: "del", Confirm: &table.Confirm{}, OnClick: func(context.Context, item) error { return nil }}}
		})
		rows := []item{{ID: 7, Name: "a"}}
		armed, _ := tb.Update(rows, tb.InitialState(), table.ActionClicked{Action: "del", RowKey: "7"})
		v := tb.View("/x", rows, armed)
		if v.Confirm == nil {
			t.Fatalf("expected confirm prompt")
		}
		if v.Confirm.Message != table.DefaultConfirmMessage {
			t.Errorf("unexpected message %q", v.Confirm.Message)
		}
		if v.Confirm.Post != "/x/confirm?confirm=del&row=7&size=10" || v.Confirm.CancelHref != "/x?size=10" {
			t.Errorf("unexpected confirm links %+v", v.Confirm)
		}
	})
}

func TestParseState(t *testing.T) {
	tb := newTable(t, func(c *table.Config[item]) { c.Columns[1].Sortable = false })
	q := map[string][]string{
		"sort":   {"name"},
		"dir":    {"sideways"},
		"page":   {"-1"},
		"size":   {"3"},
		"q":      {"abc"},
		"f.id":   {"4"},
		"f.nope": {"x"},
	}
	got := tb.ParseState(q)
	want := table.State{
		SortDir:  table.Asc,
		Page:     1,
		PageSize: 10,
		Search:   "abc",
		Filters:  map[string]string{"id": "4"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}
