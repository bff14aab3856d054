package catalog

import (
	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/table"
)

var Categories = Resource[model.Category]{
	Name:       "categories",
	Title:      "Gestión de Categorías",
	Collection: backend.Categories,
	NoData:     "No hay categorías registradas",
	ExportName: "categorias",
	Columns: []table.Column[model.Category]{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "nombre", Label: "Nombre", Sortable: true, ExportLabel: "Nombre de la categoría"},
		{Key: "descripcion", Label: "Descripción", Sortable: true, ExportLabel: "Descripción"},
	},
	ID:         func(c model.Category) int64 { return c.ID },
	Describe:   func(c model.Category) string { return c.Nombre },
	NewTitle:   "Nueva Categoría",
	EditTitle:  "Editar Categoría",
	CreateText: "Crear Categoría",
	Fields: func(Deps) []form.Field {
		return []form.Field{
			{Name: "nombre", Label: "Nombre de la categoría", Type: form.Text, Placeholder: "Ej: Analgésicos", Required: true,
				Validate: minLength(3, "El nombre debe tener al menos 3 caracteres")},
			{Name: "descripcion", Label: "Descripción", Type: form.TextArea, Placeholder: "Describe la categoría", Required: true,
				Validate: minLength(10, "La descripción debe tener al menos 10 caracteres")},
		}
	},
	Values: func(c model.Category) form.Values {
		vs := form.Values{"nombre": form.String(c.Nombre)}
		if c.Descripcion != nil {
			vs["descripcion"] = form.String(*c.Descripcion)
		}
		return vs
	},
}
