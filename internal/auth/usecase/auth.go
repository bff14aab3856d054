package usecase

import (
	"context"
	"fmt"

	"retail-admin-web/internal/auth"
	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/model"
)

// Login authenticates against the backend and stores token and profile in sess.
func (uc *implUseCase) Login(ctx context.Context, sess auth.Session, in backend.LoginInput) (model.Profile, error) {
	out, err := uc.repo.Login(ctx, in)
	if err != nil {
		return model.Profile{}, err
	}

	role := out.Profile.Role()
	if role != model.RoleAdmin && role != model.RoleUser {
		uc.l.Warnf(ctx, "auth.usecase.Login: user %d has role %q", out.Profile.ID, out.Profile.RoleNombre)
		return model.Profile{}, auth.ErrUnknownRole
	}

	if err := sess.Login(ctx, out.Token, out.Profile); err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Login: %v", err)
		return model.Profile{}, fmt.Errorf("%w: %v", auth.ErrSession, err)
	}
	return out.Profile, nil
}

func (uc *implUseCase) Register(ctx context.Context, in backend.RegisterInput) error {
	return uc.repo.Register(ctx, in)
}

func (uc *implUseCase) Logout(ctx context.Context, sess auth.Session) error {
	if err := sess.Logout(ctx); err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Logout: %v", err)
		return fmt.Errorf("%w: %v", auth.ErrSession, err)
	}
	return nil
}
