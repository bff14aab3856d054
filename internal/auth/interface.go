package auth

import (
	"context"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/model"
)

// Session is the part of the browser session the use case writes.
type Session interface {
	Login(ctx context.Context, token string, p model.Profile) error
	Logout(ctx context.Context) error
}

//go:generate mockery --name UseCase
type UseCase interface {
	Login(ctx context.Context, sess Session, in backend.LoginInput) (model.Profile, error)
	Register(ctx context.Context, in backend.RegisterInput) error
	Logout(ctx context.Context, sess Session) error
}
