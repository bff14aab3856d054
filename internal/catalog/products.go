package catalog

import (
	"strconv"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/table"
)

const NoCategoriesNotice = "No hay categorías disponibles. Por favor, crea al menos una categoría antes de crear un producto."

func productColumns() []table.Column[model.Product] {
	return []table.Column[model.Product]{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "nombre", Label: "Nombre", Sortable: true, ExportLabel: "Nombre del Producto"},
		{Key: "categoriaNombre", Label: "Categoría", Sortable: true, ExportLabel: "Categoría"},
		{Key: "precio", Label: "Precio", Sortable: true, ExportLabel: "Precio (COP)",
			Render:       func(p model.Product) string { return FormatMoney(p.Precio) },
			ExportFormat: FormatNumber},
		{Key: "cantidad", Label: "Cantidad", Sortable: true, ExportLabel: "Cantidad en Stock", RenderHTML: StockBadge},
	}
}

// Products is the admin products page.
var Products = Resource[model.Product]{
	Name:       "products",
	Title:      "Gestión de Productos",
	Collection: backend.Products,
	NoData:     "No hay productos registrados",
	ExportName: "productos",
	Columns:    productColumns(),
	ID:         func(p model.Product) int64 { return p.ID },
	Describe:   func(p model.Product) string { return p.Nombre },
	NewTitle:   "Nuevo Producto",
	EditTitle:  "Editar Producto",
	CreateText: "Crear Producto",
	Fields:     productFields,
	Values: func(p model.Product) form.Values {
		vs := form.Values{
			"nombre":   form.String(p.Nombre),
			"precio":   form.Number(p.Precio),
			"cantidad": form.Number(float64(p.Cantidad)),
		}
		if p.CategoriaID != nil {
			vs["categoriaId"] = form.Number(float64(*p.CategoriaID))
		}
		return vs
	},
	Precheck: func(d Deps) string {
		if len(d.Categories) == 0 {
			return NoCategoriesNotice
		}
		return ""
	},
}

func productFields(d Deps) []form.Field {
	options := make([]form.Option, 0, len(d.Categories))
	for _, c := range d.Categories {
		options = append(options, form.Option{Value: form.Number(float64(c.ID)), Label: c.Nombre})
	}
	return []form.Field{
		{Name: "nombre", Label: "Nombre del Producto", Type: form.Text, Placeholder: "Ej: Dolex", Required: true,
			Validate: minLength(3, "El nombre debe tener al menos 3 caracteres")},
		{Name: "categoriaId", Label: "Categoría", Type: form.Select, Placeholder: "Selecciona una categoría", Required: true,
			Options: options,
			Validate: func(v form.Value, _ form.Values) string {
				if !v.Truthy() {
					return "Debes seleccionar una categoría"
				}
				return ""
			}},
		{Name: "precio", Label: "Precio", Type: form.Numeric, Placeholder: "14000", Required: true,
			Min: form.Bound(0), Step: form.Bound(100), Default: form.Preset(form.Number(0)),
			Validate: func(v form.Value, _ form.Values) string {
				if n, ok := v.Num(); !ok || n <= 0 {
					return "El precio debe ser mayor a 0"
				}
				return ""
			}},
		{Name: "cantidad", Label: "Cantidad", Type: form.Numeric, Placeholder: "10", Required: true,
			Min: form.Bound(0), Step: form.Bound(1), Default: form.Preset(form.Number(0)),
			Validate: func(v form.Value, _ form.Values) string {
				if n, ok := v.Num(); !ok || n < 0 {
					return "La cantidad no puede ser negativa"
				}
				return ""
			}},
	}
}

// ShopCatalog is the product list a user buys from.
var ShopCatalog = Resource[model.Product]{
	Name:       "catalog",
	Title:      "Catálogo de Productos",
	Collection: backend.Products,
	NoData:     "No hay productos disponibles",
	Columns: []table.Column[model.Product]{
		{Key: "nombre", Label: "Producto", Sortable: true},
		{Key: "categoriaNombre", Label: "Categoría", Sortable: true},
		{Key: "precio", Label: "Precio", Sortable: true, Render: func(p model.Product) string { return FormatMoney(p.Precio) }},
		{Key: "cantidad", Label: "Disponibles", Sortable: true, RenderHTML: StockBadge},
	},
	ID:       func(p model.Product) int64 { return p.ID },
	Describe: func(p model.Product) string { return p.Nombre },
}

// PurchaseForm is the quantity form opened by the "Comprar" action.
func PurchaseForm(p model.Product) (*form.Form, error) {
	return form.New(form.Schema{
		Name:       "compra",
		Title:      "Comprar " + p.Nombre,
		SubmitText: "Comprar",
		Fields: []form.Field{
			{Name: "cantidad", Label: "Cantidad", Type: form.Numeric, Required: true,
				Min: form.Bound(1), Max: form.Bound(float64(p.Cantidad)), Step: form.Bound(1),
				Default: form.Preset(form.Number(1)),
				Validate: func(v form.Value, _ form.Values) string {
					if n, ok := v.Num(); !ok || n != float64(int64(n)) {
						return "La cantidad debe ser un número entero"
					}
					return ""
				}},
		},
	})
}

// PurchaseInput converts validated purchase values.
func PurchaseInput(p model.Product, vs form.Values) backend.PurchaseInput {
	n, _ := vs.Get("cantidad").Num()
	return backend.PurchaseInput{ProductoID: p.ID, Cantidad: int64(n)}
}

// ParseID reads a numeric row id from a path parameter.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}
