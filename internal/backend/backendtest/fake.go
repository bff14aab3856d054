// Package backendtest provides an in-memory backend.Repository for handler tests.
package backendtest

import (
	"context"
	"slices"
	"sync"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/model"
	"retail-admin-web/pkg/httpreq"
)

// Fake is a backend.Repository holding its rows in memory. A non-nil Err is
// returned by every call.
type Fake struct {
	mu sync.Mutex

	Token      string
	Profile    model.Profile
	Products   []model.Product
	Categories []model.Category
	Users      []model.User
	Sales      []model.Sale
	Dashboard  model.DashboardData
	Err        error

	Registered []backend.RegisterInput
	Purchased  []backend.PurchaseInput
	Deleted    []string
}

var _ backend.Repository = (*Fake)(nil)

func (f *Fake) Login(ctx context.Context, in backend.LoginInput) (backend.LoginOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return backend.LoginOutput{}, f.Err
	}
	if in.Email != f.Profile.Email {
		return backend.LoginOutput{}, backend.ErrInvalidCredentials
	}
	return backend.LoginOutput{Token: f.Token, Profile: f.Profile}, nil
}

func (f *Fake) Register(ctx context.Context, in backend.RegisterInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Registered = append(f.Registered, in)
	return nil
}

func (f *Fake) ListProducts(ctx context.Context, creds httpreq.Credentials) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Products), f.Err
}

func (f *Fake) ListCategories(ctx context.Context, creds httpreq.Credentials) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Categories), f.Err
}

func (f *Fake) ListUsers(ctx context.Context, creds httpreq.Credentials) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Users), f.Err
}

func (f *Fake) Delete(ctx context.Context, creds httpreq.Credentials, c backend.Collection, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Deleted = append(f.Deleted, c.ItemPath(id))
	switch c {
	case backend.Products:
		f.Products = slices.DeleteFunc(f.Products, func(p model.Product) bool { return p.ID == id })
	case backend.Categories:
		f.Categories = slices.DeleteFunc(f.Categories, func(x model.Category) bool { return x.ID == id })
	case backend.Users:
		f.Users = slices.DeleteFunc(f.Users, func(u model.User) bool { return u.ID == id })
	}
	return nil
}

func (f *Fake) Purchase(ctx context.Context, creds httpreq.Credentials, in backend.PurchaseInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	if in.Cantidad <= 0 {
		return backend.ErrInvalidQuantity
	}
	f.Purchased = append(f.Purchased, in)
	return nil
}

func (f *Fake) MyPurchases(ctx context.Context, creds httpreq.Credentials) ([]model.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Sales), f.Err
}

func (f *Fake) AdminDashboard(ctx context.Context, creds httpreq.Credentials) (model.DashboardData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Dashboard, f.Err
}
