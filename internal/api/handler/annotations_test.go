package handler

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

// The JSON and download handlers carry swag annotations; keep their
// @Router lines in step with router.go.
func TestRecordHandler_RouteAnnotations(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "record_handler.go", nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]string{
		"List":        "/dados.json [get]",
		"Suggestions": "/api/sugestoes/{campo} [get]",
		"ExportCSV":   "/exportar_csv [get]",
		"ExportXLSX":  "/exportar_excel [get]",
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		route, ok := want[fn.Name.Name]
		if !ok {
			continue
		}
		delete(want, fn.Name.Name)

		tags := map[string]string{}
		for _, line := range strings.Split(fn.Doc.Text(), "\n") {
			fields := strings.Fields(line)
			if len(fields) > 1 && strings.HasPrefix(fields[0], "@") {
				tags[fields[0]] = strings.Join(fields[1:], " ")
			}
		}
		for _, tag := range []string{"@Summary", "@Tags", "@Produce", "@Success"} {
			if tags[tag] == "" {
				t.Fatalf("%s: missing %s", fn.Name.Name, tag)
			}
		}
		if tags["@Router"] != route {
			t.Fatalf("%s: @Router %q, want %q", fn.Name.Name, tags["@Router"], route)
		}
	}
	if len(want) != 0 {
		t.Fatalf("handlers not found: %v", want)
	}
}
