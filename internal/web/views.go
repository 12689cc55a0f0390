package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	notFoundView = "not_found"
)

// parseViews builds one template set per view file, each sharing the layout.
func parseViews() (map[string]*template.Template, error) {
	layout, err := template.ParseFS(templatesFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	views := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		views[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return views, nil
}

// viewTitles are the document titles of the built-in views.
var viewTitles = map[string]string{
	"home":            "Réunions",
	"login":           "Connexion",
	"signup":          "Créer un compte",
	"meeting":         "Réunion",
	"admin_dashboard": "Tableau de bord",
	"forgot_password": "Mot de passe oublié",
	"update_password": "Nouveau mot de passe",
	notFoundView:      "Page introuvable",
}
