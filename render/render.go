// Package render converts document tree into HTML fragments.
//
// Every tag has its own producer registered in a dispatch table. Character
// data is always HTML-escaped first and only then handed to the autolinker,
// the escaped type below makes it impossible to autolink raw text or to escape
// autolinker output by mistake.
package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hammock/autolink"
	"hammock/page"
	"hammock/render/htmlesc"
	"hammock/toc"
	"hammock/tree"
)

// DefaultStylesheet is linked from the page head unless configured otherwise.
const DefaultStylesheet = "hammock-custom.css"

// escaped is character data already safe to be placed into HTML.
type escaped string

func escape(s string) escaped {
	return escaped(htmlesc.Text(s))
}

// Renderer renders a single document. It is not safe for concurrent use and
// should not be reused for another document.
type Renderer struct {
	log         *zap.Logger
	table       *toc.Table
	linker      *autolink.Linker
	stylesheet  string
	tocTitle    string
	script      bool
	highlighter *Highlighter

	path     []string
	inAnchor int
	warnings []UnknownTagWarning
}

// Option modifies Renderer.
type Option func(*Renderer)

func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// WithStylesheet sets href of the stylesheet linked from page head, empty
// value removes the link.
func WithStylesheet(href string) Option {
	return func(r *Renderer) {
		r.stylesheet = href
	}
}

// WithTOCTitle sets TOC panel title used when document does not have
// "toc_title" attribute.
func WithTOCTitle(title string) Option {
	return func(r *Renderer) {
		r.tocTitle = title
	}
}

// WithScrollScript controls whether script highlighting current TOC entry is
// put into page head.
func WithScrollScript(enable bool) Option {
	return func(r *Renderer) {
		r.script = enable
	}
}

// WithHighlighter enables syntax highlighting of code blocks with "syntax"
// attribute.
func WithHighlighter(h *Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
	}
}

// New creates renderer for the document table was built from. Table must be
// complete - autolinking uses all its rules.
func New(table *toc.Table, opts ...Option) *Renderer {
	r := &Renderer{
		log:        zap.NewNop(),
		table:      table,
		linker:     table.Linker(),
		stylesheet: DefaultStylesheet,
		tocTitle:   toc.DefaultTitle,
		script:     true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Warnings returns unknown tags met so far.
func (r *Renderer) Warnings() []UnknownTagWarning {
	return r.warnings
}

// Render returns HTML fragment for node and its subtree. Node tail is not
// included.
func (r *Renderer) Render(n *tree.Node) (string, error) {
	var sb strings.Builder
	if err := r.node(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Document renders document root into page slots.
func (r *Renderer) Document(root *tree.Node) (page.Slots, error) {
	var slots page.Slots

	body, err := r.Render(root)
	if err != nil {
		return slots, err
	}

	head, err := r.head()
	if err != nil {
		return slots, err
	}

	slots.Head = head
	slots.TOC = r.table.Panel(root.AttrDefault("toc_title", r.tocTitle))
	slots.Body = body

	if len(r.warnings) > 0 {
		r.log.Warn("Document has elements which cannot be rendered", zap.Int("count", len(r.warnings)))
	}
	return slots, nil
}

func (r *Renderer) head() (string, error) {
	var sb strings.Builder
	if len(r.stylesheet) > 0 {
		fmt.Fprintf(&sb, `<link href="%s" rel="stylesheet" type="text/css">`, htmlesc.Attr(r.stylesheet))
	}
	if r.highlighter != nil {
		css, err := r.highlighter.CSS()
		if err != nil {
			return "", err
		}
		sb.WriteString("<style>")
		sb.WriteString(css)
		sb.WriteString("</style>")
	}
	if r.script {
		script, err := r.table.Script()
		if err != nil {
			return "", err
		}
		sb.WriteString(script)
	}
	return sb.String(), nil
}

// node dispatches element to its producer.
func (r *Renderer) node(sb *strings.Builder, n *tree.Node) error {
	h, ok := handlers[n.Tag]
	if !ok {
		r.unknown(sb, n)
		return nil
	}
	r.path = append(r.path, n.Tag)
	defer func() { r.path = r.path[:len(r.path)-1] }()
	return h(r, sb, n)
}

func (r *Renderer) unknown(sb *strings.Builder, n *tree.Node) {
	w := UnknownTagWarning{Tag: n.Tag, Path: append([]string(nil), r.path...)}
	r.warnings = append(r.warnings, w)
	r.log.Warn("Unknown tag, rendering error marker", zap.String("tag", n.Tag), zap.Strings("path", w.Path))

	sb.WriteString(`<span class="hammock-interpret-error">`)
	sb.WriteString(string(escape("<" + n.Tag + ">")))
	sb.WriteString(`</span>`)
}

// link autolinks escaped text. Text inside explicit hyperlinks is left as is,
// nested hyperlinks are not valid HTML.
func (r *Renderer) link(s escaped) string {
	if r.inAnchor > 0 {
		return string(s)
	}
	return r.linker.Apply(string(s))
}

// inner writes node content: own text, children and their tails.
func (r *Renderer) inner(sb *strings.Builder, n *tree.Node) error {
	sb.WriteString(r.link(escape(n.Text)))
	for _, child := range n.Children {
		if err := r.node(sb, child); err != nil {
			return err
		}
		sb.WriteString(r.link(escape(child.Tail)))
	}
	return nil
}
