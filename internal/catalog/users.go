package catalog

import (
	"regexp"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/table"
)

var loosePattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var Users = Resource[model.User]{
	Name:       "users",
	Title:      "Gestión de Usuarios",
	Collection: backend.Users,
	NoData:     "No hay usuarios registrados",
	ExportName: "usuarios",
	Columns: []table.Column[model.User]{
		{Key: "id", Label: "ID", Sortable: true},
		{Key: "username", Label: "Usuario", Sortable: true},
		{Key: "nombreCompleto", Label: "Nombre completo", Sortable: true},
		{Key: "email", Label: "Correo", Sortable: true},
		{Key: "telefono", Label: "Teléfono", Sortable: true},
		{Key: "roleNombre", Label: "Rol", Sortable: true, RenderHTML: RoleBadge},
	},
	ID:         func(u model.User) int64 { return u.ID },
	Describe:   func(u model.User) string { return u.Username },
	NewTitle:   "Nuevo Usuario",
	EditTitle:  "Editar Usuario",
	CreateText: "Crear Usuario",
	Fields: func(d Deps) []form.Field {
		password, confirm := passwordField(), confirmPasswordField()
		if d.Editing {
			password, confirm = optional(password), optional(confirm)
		}
		return append(profileFields(),
			form.Field{Name: "roleNombre", Label: "Rol", Type: form.Select, Required: true,
				Options: []form.Option{
					{Value: form.String(string(model.RoleUser)), Label: "USER"},
					{Value: form.String(string(model.RoleAdmin)), Label: "ADMIN"},
				},
				Default: form.Preset(form.String(string(model.RoleUser)))},
			password,
			confirm,
		)
	},
	Values: func(u model.User) form.Values {
		return form.Values{
			"username":       form.String(u.Username),
			"nombreCompleto": form.String(u.NombreCompleto),
			"email":          form.String(u.Email),
			"telefono":       form.String(u.Telefono),
			"roleNombre":     form.String(u.RoleNombre),
		}
	},
}

func profileFields() []form.Field {
	return []form.Field{
		{Name: "username", Label: "Usuario", Type: form.Text, Placeholder: "Ej: juanperez", Required: true,
			Validate: minLength(3, "El usuario debe tener al menos 3 caracteres")},
		{Name: "nombreCompleto", Label: "Nombre completo", Type: form.Text, Placeholder: "Ej: Juan Pérez", Required: true,
			Validate: minLength(3, "El nombre completo debe tener al menos 3 caracteres")},
		{Name: "email", Label: "Correo", Type: form.Email, Placeholder: "Ej: juan.perez@example.com", Required: true,
			Validate: func(v form.Value, _ form.Values) string {
				if !loosePattern.MatchString(v.String()) {
					return "Correo inválido"
				}
				return ""
			}},
		{Name: "telefono", Label: "Teléfono", Type: form.Text, Placeholder: "Ej: 3111234567", Required: true,
			Validate: minLength(7, "Teléfono inválido")},
	}
}

func passwordField() form.Field {
	return form.Field{Name: "password", Label: "Contraseña", Type: form.Password, Placeholder: "********", Required: true,
		Validate: func(v form.Value, _ form.Values) string {
			if len(v.String()) < 6 {
				return "La contraseña debe tener al menos 6 caracteres"
			}
			return ""
		}}
}

func confirmPasswordField() form.Field {
	return form.Field{Name: "confirmPassword", Label: "Confirmar Contraseña", Type: form.Password, Placeholder: "********", Required: true,
		Validate: func(v form.Value, all form.Values) string {
			if len(v.String()) < 6 {
				return "La contraseña debe tener al menos 6 caracteres"
			}
			if v.String() != all.Get("password").String() {
				return "Las contraseñas no coinciden"
			}
			return ""
		}}
}

// optional keeps the rules of f but only applies them once a value is typed.
func optional(f form.Field) form.Field {
	rule := f.Validate
	f.Required = false
	f.Placeholder = "Dejar en blanco para mantener la actual"
	f.Validate = func(v form.Value, all form.Values) string {
		if v.IsBlank() && all.Get("password").IsBlank() {
			return ""
		}
		return rule(v, all)
	}
	return f
}
