package model

import "strings"

// Role is the authorization role carried by the session profile.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole normalizes a backend role name ("admin", "Admin", ...) to a Role.
func ParseRole(name string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(name)))
}

// Profile is the user record cached in the session after login.
type Profile struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	NombreCompleto     string `json:"nombreCompleto"`
	Telefono           string `json:"telefono"`
	Activo             bool   `json:"activo"`
	FechaCreacion      string `json:"fechaCreacion"`
	FechaActualizacion string `json:"fechaActualizacion"`
	RoleID             int64  `json:"roleId"`
	RoleNombre         string `json:"roleNombre"`
}

// Role returns the normalized role of the profile.
func (p Profile) Role() Role {
	return ParseRole(p.RoleNombre)
}

// User is a row of the admin users table.
type User struct {
	Profile
}

func (u User) Field(key string) (any, bool) {
	switch key {
	case "id":
		return u.ID, true
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	case "nombreCompleto":
		return u.NombreCompleto, true
	case "telefono":
		return u.Telefono, true
	case "activo":
		return u.Activo, true
	case "fechaCreacion":
		return u.FechaCreacion, true
	case "fechaActualizacion":
		return u.FechaActualizacion, true
	case "roleId":
		return u.RoleID, true
	case "roleNombre":
		return u.RoleNombre, true
	}
	return nil, false
}
