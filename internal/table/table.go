// Package table implements a generic, server-rendered data table: single-column
// sort, free-text search, per-column filters, pagination, row actions with an
// explicit confirmation step, and spreadsheet export of the filtered rows.
package table

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultNoDataMessage  = "No hay datos"
	DefaultConfirmMessage = "¿Seguro?"
	DefaultMaxColWidth    = 50
)

// DefaultPageSizes is used when a Config does not list its own.
var DefaultPageSizes = []int{5, 10, 20}

var (
	ErrNoColumns       = errors.New("table: at least one column is required")
	ErrNoRowKey        = errors.New("table: RowKey is required")
	ErrDuplicateColumn = errors.New("table: duplicate column key")
	ErrDuplicateAction = errors.New("table: duplicate action name")
)

// Row is the capability a row type must expose: lookup of a field by column key.
// The second result is false when the row has no such field.
type Row interface {
	Field(key string) (any, bool)
}

// Column describes one rendered column. Key must name a row field unless a
// renderer is supplied.
type Column[R Row] struct {
	Key      string
	Label    string
	Sortable bool
	// Render returns the display text of a cell.
	Render func(R) string
	// RenderHTML returns cell markup; it is sanitized before output.
	RenderHTML func(R) string

	ExportLabel  string
	ExportFormat func(any) string
}

// Confirm arms an interactive yes/no step before an action runs.
type Confirm struct {
	Message string
}

// Action is a per-row button. Href actions render as links and carry no handler.
type Action[R Row] struct {
	Name    string
	Label   string
	Confirm *Confirm
	// ConfirmFor overrides Confirm.Message with a per-row prompt.
	ConfirmFor func(R) string
	Href       func(R) string
	OnClick    func(ctx context.Context, row R) error
}

// Config is the declaration of a table.
type Config[R Row] struct {
	Name          string
	Title         string
	Columns       []Column[R]
	Actions       []Action[R]
	RowKey        func(R) string
	RowHref       func(R) string
	NoDataMessage string

	PageSizes       []int
	DefaultPageSize int

	EnableSearch        bool
	EnableColumnFilters bool

	// ExportFileName is the base name of exported files; empty disables export.
	ExportFileName    string
	ExportMaxColWidth int
}

// Table is a validated Config ready to process rows.
type Table[R Row] struct {
	cfg    Config[R]
	policy *bluemonday.Policy
}

// New validates cfg and fills defaults.
func New[R Row](cfg Config[R]) (*Table[R], error) {
	if len(cfg.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if cfg.RowKey == nil {
		return nil, ErrNoRowKey
	}
	seen := make(map[string]bool, len(cfg.Columns))
	for _, col := range cfg.Columns {
		if col.Key == "" || seen[col.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Key)
		}
		seen[col.Key] = true
	}
	names := make(map[string]bool, len(cfg.Actions))
	for _, a := range cfg.Actions {
		if a.Name == "" || names[a.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name)
		}
		names[a.Name] = true
	}

	if cfg.NoDataMessage == "" {
		cfg.NoDataMessage = DefaultNoDataMessage
	}
	if len(cfg.PageSizes) == 0 {
		cfg.PageSizes = DefaultPageSizes
	}
	if !slices.Contains(cfg.PageSizes, cfg.DefaultPageSize) {
		cfg.DefaultPageSize = cfg.PageSizes[0]
	}
	if cfg.ExportMaxColWidth <= 0 {
		cfg.ExportMaxColWidth = DefaultMaxColWidth
	}

	return &Table[R]{cfg: cfg, policy: cellSanitizer()}, nil
}

var (
	cellPolicyOnce sync.Once
	cellPolicy     *bluemonday.Policy
)

// cellSanitizer is the UGC policy plus classed spans for status badges.
func cellSanitizer() *bluemonday.Policy {
	cellPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("span")
		policy.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-z0-9 -]+$`)).OnElements("span")
		cellPolicy = policy
	})
	return cellPolicy
}

// MustNew is New for package-level declarations.
func MustNew[R Row](cfg Config[R]) *Table[R] {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *Table[R]) Name() string { return t.cfg.Name }

func (t *Table[R]) column(key string) (Column[R], bool) {
	for _, c := range t.cfg.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[R]{}, false
}

func (t *Table[R]) action(name string) (Action[R], bool) {
	for _, a := range t.cfg.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action[R]{}, false
}

func (t *Table[R]) findRow(rows []R, key string) (R, bool) {
	for _, r := range rows {
		if t.cfg.RowKey(r) == key {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Dispatch applies ev and runs the action handler when the transition yields an
// invocation. The handler error is returned as-is.
func (t *Table[R]) Dispatch(ctx context.Context, rows []R, s State, ev Event) (State, error) {
	next, inv := t.Update(rows, s, ev)
	if inv == nil {
		return next, nil
	}
	a, ok := t.action(inv.Action)
	if !ok || a.OnClick == nil {
		return next, nil
	}
	row, ok := t.findRow(rows, inv.RowKey)
	if !ok {
		return next, nil
	}
	return next, a.OnClick(ctx, row)
}
