package model

// Product is a catalog product as returned by /v1/productos.
type Product struct {
	ID              int64   `json:"id"`
	Nombre          string  `json:"nombre"`
	Precio          float64 `json:"precio"`
	Cantidad        int64   `json:"cantidad"`
	CategoriaID     *int64  `json:"categoriaId"`
	CategoriaNombre *string `json:"categoriaNombre"`
}

func (p Product) Field(key string) (any, bool) {
	switch key {
	case "id":
		return p.ID, true
	case "nombre":
		return p.Nombre, true
	case "precio":
		return p.Precio, true
	case "cantidad":
		return p.Cantidad, true
	case "categoriaId":
		if p.CategoriaID == nil {
			return nil, true
		}
		return *p.CategoriaID, true
	case "categoriaNombre":
		if p.CategoriaNombre == nil {
			return nil, true
		}
		return *p.CategoriaNombre, true
	}
	return nil, false
}

// Category is a product category as returned by /v1/categorias.
type Category struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

func (c Category) Field(key string) (any, bool) {
	switch key {
	case "id":
		return c.ID, true
	case "nombre":
		return c.Nombre, true
	case "descripcion":
		if c.Descripcion == nil {
			return nil, true
		}
		return *c.Descripcion, true
	}
	return nil, false
}

// Sale is one purchase line as returned by /v1/compras/mis-compras.
type Sale struct {
	ID             int64   `json:"id"`
	UsuarioID      int64   `json:"usuarioId"`
	UsuarioNombre  string  `json:"usuarioNombre"`
	ProductoID     int64   `json:"productoId"`
	ProductoNombre string  `json:"productoNombre"`
	Cantidad       int64   `json:"cantidad"`
	PrecioUnitario float64 `json:"precioUnitario"`
	PrecioTotal    float64 `json:"precioTotal"`
	FechaCompra    string  `json:"fechaCompra"`
}

func (s Sale) Field(key string) (any, bool) {
	switch key {
	case "id":
		return s.ID, true
	case "usuarioId":
		return s.UsuarioID, true
	case "usuarioNombre":
		return s.UsuarioNombre, true
	case "productoId":
		return s.ProductoID, true
	case "productoNombre":
		return s.ProductoNombre, true
	case "cantidad":
		return s.Cantidad, true
	case "precioUnitario":
		return s.PrecioUnitario, true
	case "precioTotal":
		return s.PrecioTotal, true
	case "fechaCompra":
		return s.FechaCompra, true
	}
	return nil, false
}

// DashboardData is the admin summary returned by /v1/dashboard/admin.
type DashboardData struct {
	TotalUsuarios         int64   `json:"totalUsuarios"`
	TotalProductos        int64   `json:"totalProductos"`
	TotalCategorias       int64   `json:"totalCategorias"`
	CrecimientoUsuarios   []int64 `json:"crecimientoUsuarios"`
	CrecimientoProductos  []int64 `json:"crecimientoProductos"`
	CrecimientoCategorias []int64 `json:"crecimientoCategorias"`
}
