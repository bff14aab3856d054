package backend

import (
	"fmt"

	"retail-admin-web/internal/model"
)

// Collection is a backend resource collection under /v1.
type Collection string

const (
	Products   Collection = "productos"
	Categories Collection = "categorias"
	Users      Collection = "usuarios"
)

// Path returns /v1/<collection>.
func (c Collection) Path() string { return "/v1/" + string(c) }

// ItemPath returns /v1/<collection>/<id>.
func (c Collection) ItemPath(id int64) string { return fmt.Sprintf("/v1/%s/%d", c, id) }

const (
	PathLogin          = "/v1/auth/login"
	PathRegister       = "/v1/auth/register"
	PathPurchases      = "/v1/compras"
	PathMyPurchases    = "/v1/compras/mis-compras"
	PathAdminDashboard = "/v1/dashboard/admin"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token   string        `json:"token"`
	Profile model.Profile `json:"usuario"`
}

type RegisterInput struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Email          string `json:"email"`
	NombreCompleto string `json:"nombreCompleto"`
	Telefono       string `json:"telefono"`
}

type PurchaseInput struct {
	ProductoID int64 `json:"productoId"`
	Cantidad   int64 `json:"cantidad"`
}
