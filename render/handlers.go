package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hammock/render/htmlesc"
	"hammock/toc"
	"hammock/tree"
)

type handler func(r *Renderer, sb *strings.Builder, n *tree.Node) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"doc":           renderDoc,
		"chapter":       structural("chapter"),
		"section":       structural("section"),
		"subsection":    structural("subsection"),
		"subsubsection": structural("subsubsection"),
		"p":             wrap("<p>", "</p>"),
		"a":             renderAnchor,
		"b":             wrap("<b>", "</b>"),
		"i":             wrap("<i>", "</i>"),
		"ul":            wrap("<ul>", "</ul>"),
		"li":            wrap("<li>", "</li>"),
		"icode":         code(`<span class="hammock-icode">`, "</span>", true),
		"code":          code(`<div class="hammock-code">`, "</div>", false),
		"output":        code(`<div class="hammock-output">`, "</div>", false),
		"tbl":           renderTable,
		"row":           wrap("<tr>", "</tr>"),
		"cell":          renderCell,
	}
}

// Known reports whether tag has registered renderer.
func Known(tag string) bool {
	_, ok := handlers[tag]
	return ok
}

func wrap(open, close string) handler {
	return func(r *Renderer, sb *strings.Builder, n *tree.Node) error {
		sb.WriteString(open)
		if err := r.inner(sb, n); err != nil {
			return err
		}
		sb.WriteString(close)
		return nil
	}
}

// trailerBreaks pad the page end so the last headings could be scrolled to
// the top of the window.
const trailerBreaks = 32

func renderDoc(r *Renderer, sb *strings.Builder, n *tree.Node) error {
	sb.WriteString(`<div class="hammock-doc-outer">`)
	sb.WriteString(`<div class="hammock-doc-header">`)
	if logo, ok := n.Attr("logo"); ok {
		fmt.Fprintf(sb, `<img src="%s">`, htmlesc.Attr(logo))
	}
	sb.WriteString(string(escape(n.AttrDefault("title", ""))))
	sb.WriteString(`<br></div>`)
	if err := r.inner(sb, n); err != nil {
		return err
	}
	sb.WriteString(`</div>`)
	sb.WriteString(strings.Repeat("<br>", trailerBreaks))
	return nil
}

// structural produces titled container with anchor for chapters and all
// levels of sections.
func structural(kind string) handler {
	return func(r *Renderer, sb *strings.Builder, n *tree.Node) error {
		title, err := n.RequireAttr("title")
		if err != nil {
			return err
		}
		id := htmlesc.Attr(toc.Namify(title))

		fmt.Fprintf(sb, `<div class="hammock-%s-outer">`, kind)
		fmt.Fprintf(sb, `<a id="%s" name="%s"></a>`, id, id)
		fmt.Fprintf(sb, `<div class="hammock-%s-title">%s</div>`, kind, escape(title))
		fmt.Fprintf(sb, `<div class="hammock-%s-contents">`, kind)
		if err := r.inner(sb, n); err != nil {
			return err
		}
		sb.WriteString(`</div></div>`)
		return nil
	}
}

// renderAnchor passes all attributes through in document order.
func renderAnchor(r *Renderer, sb *strings.Builder, n *tree.Node) error {
	sb.WriteString("<a")
	for _, a := range n.Attrs {
		fmt.Fprintf(sb, ` %s="%s"`, a.Key, htmlesc.Attr(a.Value))
	}
	sb.WriteString(">")

	r.inAnchor++
	defer func() { r.inAnchor-- }()

	if err := r.inner(sb, n); err != nil {
		return err
	}
	sb.WriteString("</a>")
	return nil
}

// tableHeaders are header rows selected by "template" attribute of the table.
var tableHeaders = map[string][]string{
	"get_fields":   {"Field", "Datatype", "Description"},
	"query_params": {"Parameter", "Required?", "Datatype and Validation", "Description"},
}

func renderTable(r *Renderer, sb *strings.Builder, n *tree.Node) error {
	sb.WriteString(`<table cellspacing="0" cellpadding="0" border="0" class="hammock-tbl">`)

	template := n.AttrDefault("template", "default")
	if header, ok := tableHeaders[template]; ok {
		sb.WriteString("<tr>")
		for _, name := range header {
			fmt.Fprintf(sb, `<td class="hammock-tbl-header">%s</td>`, escape(name))
		}
		sb.WriteString("</tr>")
	} else if template != "default" {
		r.log.Debug("Unknown table template, no header row", zap.String("template", template))
	}

	if err := r.inner(sb, n); err != nil {
		return err
	}
	sb.WriteString("</table>")
	return nil
}

func renderCell(r *Renderer, sb *strings.Builder, n *tree.Node) error {
	sb.WriteString("<td")
	if n.HasAttr("nowrap") {
		sb.WriteString(" nowrap")
	}
	if n.HasAttr("header") {
		sb.WriteString(` class="hammock-tbl-header"`)
	}
	sb.WriteString(">")
	if err := r.inner(sb, n); err != nil {
		return err
	}
	sb.WriteString("</td>")
	return nil
}
