package gen

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/go-openapi/inflect"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var funcMap = template.FuncMap{
	"quote": strconv.Quote,
	"lower": strings.ToLower,
}

var templates = template.Must(
	template.New("netforge").Funcs(funcMap).ParseFS(templatesFS, "templates/*.tmpl"),
)

// render executes one embedded template into a byte slice.
func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, &GenerationError{File: name, Message: "execute template", Cause: err}
	}
	return buf.Bytes(), nil
}

// projectTitle turns a project name into a readable README title, e.g.
// "tcp-echo-server" becomes "Tcp Echo Server".
func projectTitle(name string) string {
	return inflect.Titleize(strings.NewReplacer("-", "_", "/", "_", ".", "_").Replace(name))
}

// addCommonFiles emits the files every archetype shares: a README and,
// when requested, a CI workflow.
func addCommonFiles(fs FileSet, p *ProjectConfig, description string) error {
	readme, err := render("readme.md.tmpl", map[string]any{
		"Title":       projectTitle(p.Name),
		"Description": description,
		"Port":        p.Port,
	})
	if err != nil {
		return err
	}
	if err := fs.Add("README.md", readme); err != nil {
		return err
	}
	if p.GitHubActions {
		ci, err := render("ci.yml.tmpl", map[string]any{"Name": p.Name})
		if err != nil {
			return err
		}
		if err := fs.Add(".github/workflows/ci.yml", ci); err != nil {
			return err
		}
	}
	return nil
}
