package httpreq

import (
	"errors"
	"fmt"
	"net/http"
)

// Category classifies the outcome of a backend call.
type Category string

const (
	CategorySuccess      Category = "success"
	CategoryUnauthorized Category = "unauthorized"
	CategoryForbidden    Category = "forbidden"
	CategoryNotFound     Category = "not_found"
	CategoryServer       Category = "server"
	CategoryHTTP         Category = "http"
	CategoryTransport    Category = "transport"
)

// Sentinels matched with errors.Is against any error returned by Client.Do.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrHTTP         = errors.New("http error")
	ErrTransport    = errors.New("transport error")
)

// User-facing messages, one per category.
const (
	MsgUnauthorized = "No autorizado: tu sesión expiró o las credenciales no son válidas"
	MsgForbidden    = "Acceso denegado: no tienes permisos para realizar esta acción"
	MsgNotFound     = "Recurso no encontrado"
	MsgServer       = "Error del servidor, intenta de nuevo más tarde"
	MsgHTTPFormat   = "Error HTTP: %d"
	MsgTransport    = "No se pudo conectar con el servidor"
	MsgUnexpected   = "Error inesperado"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code     int
	Category Category
	Body     string
}

func (e *StatusError) Error() string {
	switch e.Category {
	case CategoryUnauthorized:
		return MsgUnauthorized
	case CategoryForbidden:
		return MsgForbidden
	case CategoryNotFound:
		return MsgNotFound
	case CategoryServer:
		return MsgServer
	default:
		return fmt.Sprintf(MsgHTTPFormat, e.Code)
	}
}

func (e *StatusError) Unwrap() error {
	switch e.Category {
	case CategoryUnauthorized:
		return ErrUnauthorized
	case CategoryForbidden:
		return ErrForbidden
	case CategoryNotFound:
		return ErrNotFound
	case CategoryServer:
		return ErrServer
	default:
		return ErrHTTP
	}
}

// TransportError wraps a failure to obtain any HTTP response at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return MsgTransport }

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// Categorize maps an HTTP status code to its category.
func Categorize(status int) Category {
	switch {
	case status >= 200 && status < 300:
		return CategorySuccess
	case status == http.StatusUnauthorized:
		return CategoryUnauthorized
	case status == http.StatusForbidden:
		return CategoryForbidden
	case status == http.StatusNotFound:
		return CategoryNotFound
	case status >= 500:
		return CategoryServer
	default:
		return CategoryHTTP
	}
}

// CategoryOf returns the category carried by err.
func CategoryOf(err error) Category {
	if err == nil {
		return CategorySuccess
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Category
	}
	if errors.Is(err, ErrTransport) {
		return CategoryTransport
	}
	return CategoryHTTP
}

// Message returns the human-readable message for err, or "" when err is nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if errors.Is(err, ErrTransport) {
		return MsgTransport
	}
	if err.Error() == "" {
		return MsgUnexpected
	}
	return err.Error()
}
