// Package web holds the embedded page templates and the helpers rendering them.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-admin-web/internal/catalog"
	"retail-admin-web/internal/form"
	"retail-admin-web/internal/guard"
	"retail-admin-web/internal/middleware"
	"retail-admin-web/internal/model"
	"retail-admin-web/internal/session"
	"retail-admin-web/internal/table"
)

const AppName = "Retail Admin"

//go:embed templates/*.html
var files embed.FS

// Templates parses every page and partial.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

// Funcs is the template FuncMap.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":  catalog.FormatMoney,
		"number": catalog.FormatNumber,
		"month":  month,
	}
}

var months = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

func month(i int) string {
	if i < 0 || i >= len(months) {
		return ""
	}
	return months[i]
}

// NavLink is one entry of the side menu.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// Page is the data every template receives.
type Page struct {
	AppName string
	Title   string
	Path    string
	Profile *model.Profile
	Flash   *session.Flash
	Nav     []NavLink
	Home    string
	// Notice is an inline message shown above the content.
	Notice string
	Data   any
}

// Listing is the data of a table page, with the form modal when one is open.
type Listing struct {
	Table    table.View
	Form     *form.View
	NewHref  string
	NewLabel string
}

// Dashboard is the data of the admin dashboard.
type Dashboard struct {
	Data  model.DashboardData
	Error string
}

// menu lists the side menu entries per role.
var menu = map[model.Role][]NavLink{
	model.RoleAdmin: {
		{Label: "Dashboard", Href: guard.AdminHomePath},
		{Label: "Usuarios", Href: "/admin/users"},
		{Label: "Productos", Href: "/admin/products"},
		{Label: "Categorías", Href: "/admin/categories"},
	},
	model.RoleUser: {
		{Label: "Dashboard", Href: guard.UserHomePath},
		{Label: "Catálogo", Href: "/user/catalog"},
		{Label: "Mis Compras", Href: "/user/purchases"},
	},
}

// Menu returns the side menu of role with the entry of path marked active.
func Menu(role model.Role, path string) []NavLink {
	links := make([]NavLink, 0, len(menu[role]))
	for _, l := range menu[role] {
		l.Active = l.Href == path
		links = append(links, l)
	}
	return links
}

// Render writes the named template with the common page data filled in.
func Render(c *gin.Context, status int, name string, p Page) {
	p.AppName = AppName
	p.Path = c.Request.URL.Path
	p.Flash = session.TakeFlash(c)
	if p.Profile == nil {
		if prof, ok := middleware.Profile(c); ok {
			p.Profile = &prof
		}
	}
	p.Home = guard.PublicHome
	if p.Profile != nil {
		p.Nav = Menu(p.Profile.Role(), p.Path)
		p.Home = guard.HomeFor(p.Profile.Role())
	}
	c.HTML(status, name, p)
}

// Fail renders the error page with msg.
func Fail(c *gin.Context, status int, msg string) {
	Render(c, status, "error.html", Page{Title: "Error", Notice: msg})
}

// Back redirects to target after a POST, with a flash notice when msg is set.
func Back(c *gin.Context, target, kind, msg string) {
	if msg != "" {
		session.SetFlash(c, kind, msg)
	}
	c.Redirect(http.StatusSeeOther, target)
}
