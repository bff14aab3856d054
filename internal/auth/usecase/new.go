package usecase

import (
	"retail-admin-web/internal/backend"
	"retail-admin-web/pkg/log"
)

// implUseCase is the private implementation of auth.UseCase.
type implUseCase struct {
	repo backend.Repository
	l    log.Logger
}

// New creates a new auth UseCase implementation.
func New(repo backend.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
