package backend

import (
	"context"

	"retail-admin-web/internal/model"
	"retail-admin-web/pkg/httpreq"
)

// Repository is the typed access layer to the backend REST API. Every
// authenticated call takes the credentials of the current session.
type Repository interface {
	Login(ctx context.Context, in LoginInput) (LoginOutput, error)
	Register(ctx context.Context, in RegisterInput) error

	ListProducts(ctx context.Context, creds httpreq.Credentials) ([]model.Product, error)
	ListCategories(ctx context.Context, creds httpreq.Credentials) ([]model.Category, error)
	ListUsers(ctx context.Context, creds httpreq.Credentials) ([]model.User, error)
	Delete(ctx context.Context, creds httpreq.Credentials, collection Collection, id int64) error

	Purchase(ctx context.Context, creds httpreq.Credentials, in PurchaseInput) error
	MyPurchases(ctx context.Context, creds httpreq.Credentials) ([]model.Sale, error)
	AdminDashboard(ctx context.Context, creds httpreq.Credentials) (model.DashboardData, error)
}
