// Package catalog declares the tables and forms of every page: columns,
// export labels, field schemas and their validators.
package catalog

import (
	"strconv"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/table"
)

// TableOptions are the configured pagination and export settings.
type TableOptions struct {
	PageSizes         []int
	DefaultPageSize   int
	ExportMaxColWidth int
}

// Deps is the reference data a form may need, e.g. category options.
type Deps struct {
	Categories []model.Category
	// Editing is set when the form edits an existing row.
	Editing bool
}

// Resource declares one admin CRUD page.
type Resource[R table.Row] struct {
	Name       string
	Title      string
	Collection backend.Collection
	NoData     string
	ExportName string
	Columns    []table.Column[R]

	ID       func(R) int64
	Describe func(R) string

	NewTitle   string
	EditTitle  string
	CreateText string
	Fields     func(Deps) []form.Field
	// Values returns the form values of an existing row for editing.
	Values func(R) form.Values
	// Precheck returns a notice when the create form cannot open.
	Precheck func(Deps) string
}

// RowKey is the table row key of row.
func (r Resource[R]) RowKey(row R) string {
	return strconv.FormatInt(r.ID(row), 10)
}

// Table builds the table of the resource with the given actions.
func (r Resource[R]) Table(opts TableOptions, actions ...table.Action[R]) (*table.Table[R], error) {
	return table.New(table.Config[R]{
		Name:                r.Name,
		Title:               r.Title,
		Columns:             r.Columns,
		Actions:             actions,
		RowKey:              r.RowKey,
		NoDataMessage:       r.NoData,
		PageSizes:           opts.PageSizes,
		DefaultPageSize:     opts.DefaultPageSize,
		EnableSearch:        true,
		EnableColumnFilters: true,
		ExportFileName:      r.ExportName,
		ExportMaxColWidth:   opts.ExportMaxColWidth,
	})
}

// Form builds the create form, or the edit form when editing is true.
func (r Resource[R]) Form(deps Deps, editing bool) (*form.Form, error) {
	deps.Editing = editing
	schema := form.Schema{
		Name:       r.Name,
		Title:      r.NewTitle,
		Fields:     r.Fields(deps),
		SubmitText: r.CreateText,
	}
	if editing {
		schema.Title = r.EditTitle
		schema.SubmitText = "Actualizar"
	}
	return form.New(schema)
}

// Target returns the endpoint and method saving a new row or, given id, an existing one.
func (r Resource[R]) Target(id *int64) (string, string) {
	if id == nil {
		return r.Collection.Path(), "POST"
	}
	return r.Collection.ItemPath(*id), "PUT"
}

// Payload is the body sent to the backend: the password confirmation is never
// sent, and a blank password is left out so an edit keeps the current one.
func Payload(vs form.Values) form.Values {
	out := vs.Clone()
	delete(out, "confirmPassword")
	if p, ok := out["password"]; ok && p.IsBlank() {
		delete(out, "password")
	}
	return out
}

// DeletePrompt is the confirmation asked before deleting row.
func (r Resource[R]) DeletePrompt(row R) string {
	return "¿Estás seguro de eliminar \"" + r.Describe(row) + "\"?"
}

func minLength(n int, msg string) form.Validator {
	return func(v form.Value, _ form.Values) string {
		if v.Kind() != form.KindString || len([]rune(trim(v.String()))) < n {
			return msg
		}
		return ""
	}
}
