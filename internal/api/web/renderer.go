// Package web holds the HTML templates and the echo renderer that serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var embedded embed.FS

const layoutFile = "layout.html"

// Pages are the renderable page names.
var Pages = []string{"login.html", "cadastro.html", "dados.html", "painel.html", "usuarios.html"}

// Renderer implements echo.Renderer. Every page is parsed together with the
// shared layout once at startup.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates, or those under
// resourceDir/templates when that directory exists.
func NewRenderer(resourceDir string) (*Renderer, error) {
	fsys, err := templateFS(resourceDir)
	if err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"flashClass": flashClass,
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, p := range Pages {
		t, err := template.New(layoutFile).Funcs(funcs).ParseFS(fsys, layoutFile, p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

func templateFS(resourceDir string) (fs.FS, error) {
	if resourceDir != "" {
		dir := filepath.Join(resourceDir, "templates")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return os.DirFS(dir), nil
		}
	}
	return fs.Sub(embedded, "templates")
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, layoutFile, data)
}

func flashClass(category string) string {
	switch category {
	case "success", "warning", "danger", "info":
		return "flash flash-" + category
	default:
		return "flash flash-info"
	}
}
