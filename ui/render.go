// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names
const (
	PageRegister  = "register.html"
	PageLogin     = "login.html"
	PageDashboard = "dashboard.html"
)

// RegisterView is the data of the sign-up page.
type RegisterView struct {
	FormID           string
	Values           map[string]string
	Errors           map[string]string
	ServerError      string
	ShowPasswords    bool
	Loading          bool
	RecaptchaSiteKey string
	LoginPath        string
}

// LoginView is the data of the sign-in page.
type LoginView struct {
	RegisterPath string
	Email        string
}

// DashboardView is the data of the authenticated landing page.
type DashboardView struct {
	Email     string
	Subject   string
	LoginPath string
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"spinner": spinnerFunc,
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageRegister, PageLogin, PageDashboard} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}

	return r, nil
}

// Render writes the full page. Output is buffered so a template error never
// leaves a half written page.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Static serves the stylesheet and page script under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
