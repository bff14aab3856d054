package catalog

import (
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/table"
)

// Purchases is the user's own purchase history.
var Purchases = Resource[model.Sale]{
	Name:       "purchases",
	Title:      "Mis Compras",
	NoData:     "No tienes compras registradas",
	ExportName: "mis-compras",
	Columns: []table.Column[model.Sale]{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "productoNombre", Label: "Producto", Sortable: true, ExportLabel: "Nombre del Producto"},
		{Key: "cantidad", Label: "Cantidad", Sortable: true, ExportLabel: "Cantidad Comprada"},
		{Key: "precioUnitario", Label: "Precio Unit.", Sortable: true, ExportLabel: "Precio Unitario (COP)",
			Render:       func(s model.Sale) string { return FormatMoney(s.PrecioUnitario) },
			ExportFormat: FormatNumber},
		{Key: "precioTotal", Label: "Total", Sortable: true, ExportLabel: "Precio Total (COP)",
			Render:       func(s model.Sale) string { return FormatMoney(s.PrecioTotal) },
			ExportFormat: FormatNumber},
		{Key: "fechaCompra", Label: "Fecha", Sortable: true, ExportLabel: "Fecha de Compra"},
	},
	ID:       func(s model.Sale) int64 { return s.ID },
	Describe: func(s model.Sale) string { return s.ProductoNombre },
}
