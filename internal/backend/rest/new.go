package rest

import (
	"retail-admin-web/internal/backend"
	"retail-admin-web/pkg/httpreq"
	"retail-admin-web/pkg/log"
)

type implRepository struct {
	l      log.Logger
	client *httpreq.Client
}

// New creates a backend repository over the REST API.
func New(l log.Logger, client *httpreq.Client) backend.Repository {
	return &implRepository{l: l, client: client}
}
