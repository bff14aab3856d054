package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/model"
	"retail-admin-web/pkg/httpreq"
)

// fetch issues req through a Hook and returns the decoded data.
func fetch[T any](ctx context.Context, client *httpreq.Client, req httpreq.Request) (T, error) {
	var zero T
	h := httpreq.NewHook[T](client)
	if err := h.Send(ctx, req); err != nil {
		return zero, err
	}
	if st := h.State(); st.Data != nil {
		return *st.Data, nil
	}
	return zero, nil
}

func (r *implRepository) Login(ctx context.Context, in backend.LoginInput) (backend.LoginOutput, error) {
	out, err := fetch[backend.LoginOutput](ctx, r.client, httpreq.Request{
		URL:    backend.PathLogin,
		Method: http.MethodPost,
		Body:   in,
	})
	if err != nil {
		if errors.Is(err, httpreq.ErrUnauthorized) {
			return backend.LoginOutput{}, backend.ErrInvalidCredentials
		}
		r.l.Errorf(ctx, "backend.rest.Login: %v", err)
		return backend.LoginOutput{}, err
	}
	if out.Token == "" {
		return backend.LoginOutput{}, backend.ErrEmptyToken
	}
	return out, nil
}

func (r *implRepository) Register(ctx context.Context, in backend.RegisterInput) error {
	_, err := fetch[map[string]any](ctx, r.client, httpreq.Request{
		URL:    backend.PathRegister,
		Method: http.MethodPost,
		Body:   in,
	})
	if err != nil {
		r.l.Errorf(ctx, "backend.rest.Register: %v", err)
	}
	return err
}

func (r *implRepository) ListProducts(ctx context.Context, creds httpreq.Credentials) ([]model.Product, error) {
	return list[model.Product](ctx, r, creds, backend.Products.Path())
}

func (r *implRepository) ListCategories(ctx context.Context, creds httpreq.Credentials) ([]model.Category, error) {
	return list[model.Category](ctx, r, creds, backend.Categories.Path())
}

func (r *implRepository) ListUsers(ctx context.Context, creds httpreq.Credentials) ([]model.User, error) {
	return list[model.User](ctx, r, creds, backend.Users.Path())
}

func (r *implRepository) MyPurchases(ctx context.Context, creds httpreq.Credentials) ([]model.Sale, error) {
	return list[model.Sale](ctx, r, creds, backend.PathMyPurchases)
}

func list[T any](ctx context.Context, r *implRepository, creds httpreq.Credentials, path string) ([]T, error) {
	rows, err := fetch[[]T](ctx, r.client, httpreq.Request{URL: path, Credentials: creds})
	if err != nil {
		r.l.Warnf(ctx, "backend.rest.list %s: %v", path, err)
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (r *implRepository) Delete(ctx context.Context, creds httpreq.Credentials, collection backend.Collection, id int64) error {
	path := collection.ItemPath(id)
	if _, err := r.client.Do(ctx, httpreq.Request{URL: path, Method: http.MethodDelete, Credentials: creds}); err != nil {
		r.l.Errorf(ctx, "backend.rest.Delete %s: %v", path, err)
		return err
	}
	return nil
}

func (r *implRepository) Purchase(ctx context.Context, creds httpreq.Credentials, in backend.PurchaseInput) error {
	if in.Cantidad <= 0 {
		return backend.ErrInvalidQuantity
	}
	_, err := r.client.Do(ctx, httpreq.Request{
		URL:         backend.PathPurchases,
		Method:      http.MethodPost,
		Body:        in,
		Credentials: creds,
	})
	if err != nil {
		r.l.Errorf(ctx, "backend.rest.Purchase: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) AdminDashboard(ctx context.Context, creds httpreq.Credentials) (model.DashboardData, error) {
	data, err := fetch[model.DashboardData](ctx, r.client, httpreq.Request{URL: backend.PathAdminDashboard, Credentials: creds})
	if err != nil {
		r.l.Warnf(ctx, "backend.rest.AdminDashboard: %v", err)
		return model.DashboardData{}, fmt.Errorf("backend.rest.AdminDashboard: %w", err)
	}
	return data, nil
}
