package catalog

import (
	"strings"

	"retail-admin-web/internal/backend"
	"retail-admin-web/internal/form"
)

// LoginForm is the sign-in form.
func LoginForm() *form.Form {
	return form.MustNew(form.Schema{
		Name:       "login",
		Title:      "Iniciar Sesión",
		SubmitText: "Ingresar",
		Fields: []form.Field{
			{Name: "email", Label: "Correo electrónico", Type: form.Email, Required: true},
			{Name: "password", Label: "Contraseña", Type: form.Password, Required: true},
		},
	})
}

// RegisterForm is the public sign-up form.
func RegisterForm() *form.Form {
	return form.MustNew(form.Schema{
		Name:       "registro",
		Title:      "Registro de Usuario",
		SubmitText: "Registrarse",
		Fields:     append(profileFields(), passwordField(), confirmPasswordField()),
	})
}

func LoginInput(vs form.Values) backend.LoginInput {
	return backend.LoginInput{Email: trim(vs.Get("email").String()), Password: vs.Get("password").String()}
}

func RegisterInput(vs form.Values) backend.RegisterInput {
	return backend.RegisterInput{
		Username:       trim(vs.Get("username").String()),
		Password:       vs.Get("password").String(),
		Email:          trim(vs.Get("email").String()),
		NombreCompleto: trim(vs.Get("nombreCompleto").String()),
		Telefono:       trim(vs.Get("telefono").String()),
	}
}

func trim(s string) string { return strings.TrimSpace(s) }
