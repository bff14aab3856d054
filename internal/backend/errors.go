package backend

import "errors"

var (
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrEmptyToken         = errors.New("el servidor no devolvió un token")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser mayor a 0")
)
