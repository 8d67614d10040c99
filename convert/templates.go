package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"hammock/config"
	"hammock/toc"
	"hammock/tree"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context    string
	Title      string
	SourceFile string
	SourceDir  string
	Chapters   int
	Sections   int
	Anchors    []string
}

func buildValues(name config.TemplateFieldName, root *tree.Node, table *toc.Table, src string) Values {
	v := Values{
		Context:    string(name),
		Title:      root.AttrDefault("title", ""),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourceDir:  filepath.ToSlash(filepath.Dir(src)),
	}
	if v.SourceDir == "." {
		v.SourceDir = ""
	}
	for _, e := range table.Entries {
		switch e.Kind {
		case toc.KindChapter:
			v.Chapters++
		case toc.KindSection:
			v.Sections++
		}
		v.Anchors = append(v.Anchors, e.AnchorID)
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
