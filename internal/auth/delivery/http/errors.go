package http

import (
	"errors"

	"retail-admin-web/internal/auth"
	"retail-admin-web/internal/backend"
	"retail-admin-web/pkg/httpreq"
)

const (
	MsgInvalidCredentials = "Correo o contraseña incorrectos"
	MsgEmptyToken         = "El servidor no devolvió un token de acceso"
	MsgUnknownRole        = "Tu cuenta no tiene un rol válido"
	MsgSession            = "No se pudo guardar la sesión, intenta de nuevo"
	MsgRegistered         = "Registro exitoso. Ahora puedes iniciar sesión."
)

// mapError translates use case errors into the banner shown on the form.
func (h *handler) mapError(err error) string {
	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, backend.ErrEmptyToken):
		return MsgEmptyToken
	case errors.Is(err, auth.ErrUnknownRole):
		return MsgUnknownRole
	case errors.Is(err, auth.ErrSession):
		return MsgSession
	default:
		return httpreq.Message(err)
	}
}
