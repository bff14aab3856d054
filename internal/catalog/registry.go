package catalog

import (
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/model"
)

// Lookup returns the form named name for field-level validation. Forms whose
// options come from the backend are built without them.
func Lookup(name string) (*form.Form, bool) {
	var (
		f   *form.Form
		err error
	)
	switch name {
	case "login":
		f = LoginForm()
	case "registro":
		f = RegisterForm()
	case Products.Name:
		f, err = Products.Form(Deps{}, false)
	case Categories.Name:
		f, err = Categories.Form(Deps{}, false)
	case Users.Name:
		f, err = Users.Form(Deps{}, false)
	case "compra":
		f, err = PurchaseForm(model.Product{Cantidad: 1<<31 - 1})
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return f, true
}
