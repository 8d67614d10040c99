// Package toc builds table of contents and autolink rules for a document.
package toc

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"hammock/autolink"
	"hammock/tree"
)

// Kind of heading producing TOC entry.
type Kind int

const (
	KindChapter Kind = iota
	KindSection
)

func (k Kind) String() string {
	switch k {
	case KindChapter:
		return "chapter"
	case KindSection:
		return "section"
	default:
		return "unknown"
	}
}

// kinds maps tags producing TOC entries. Subsections are walked through but
// never listed.
var kinds = map[string]Kind{
	"chapter": KindChapter,
	"section": KindSection,
}

// Entry is a single TOC line.
type Entry struct {
	Title    string
	AnchorID string
	Kind     Kind
}

// Href returns in-page link to the entry heading.
func (e Entry) Href() string {
	return "#" + e.AnchorID
}

// TocID returns id of the element representing entry in TOC panel.
func (e Entry) TocID() string {
	return "toc_" + e.AnchorID
}

// Table is the result of a single TOC pass. It is never modified after Build
// returns.
type Table struct {
	Entries []Entry
	Rules   []autolink.Rule
}

// Linker returns autolinker for the table rules.
func (t *Table) Linker() *autolink.Linker {
	return autolink.NewLinker(t.Rules)
}

// Namify converts heading title to identifier usable as URL fragment or file
// name: lower case, every run of white space replaced with single underscore.
//
//	Namify("List Users") == "list_users"
func Namify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, c := range strings.ToLower(s) {
		if unicode.IsSpace(c) {
			if !inSpace {
				sb.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(c)
	}
	return sb.String()
}

type builder struct {
	log     *zap.Logger
	trim    bool
	entries []Entry
	rules   []autolink.Rule
	anchors map[string]string
}

// Option modifies TOC pass.
type Option func(*builder)

// WithTrimKeywords removes white space around keywords listed in "autolinks"
// attribute. By default keywords are used exactly as written.
func WithTrimKeywords(trim bool) Option {
	return func(b *builder) {
		b.trim = trim
	}
}

// WithLogger sets logger for warnings.
func WithLogger(log *zap.Logger) Option {
	return func(b *builder) {
		b.log = log
	}
}

// Build walks the whole tree in document order collecting TOC entries and
// autolink rules. Returned rules are sorted longest keyword first.
func Build(root *tree.Node, opts ...Option) (*Table, error) {
	b := &builder{
		log:     zap.NewNop(),
		anchors: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := root.Walk(b.visit); err != nil {
		return nil, err
	}

	autolink.Sort(b.rules)
	return &Table{Entries: b.entries, Rules: b.rules}, nil
}

func (b *builder) visit(n *tree.Node) error {
	kind, ok := kinds[n.Tag]
	if !ok {
		return nil
	}

	title, err := n.RequireAttr("title")
	if err != nil {
		return err
	}

	e := Entry{Title: title, AnchorID: Namify(title), Kind: kind}
	if prev, exists := b.anchors[e.AnchorID]; exists {
		b.log.Warn("Duplicate heading anchor, links will lead to the first one",
			zap.String("anchor", e.AnchorID), zap.String("title", title), zap.String("first", prev))
	} else {
		b.anchors[e.AnchorID] = title
	}

	b.entries = append(b.entries, e)
	b.rules = append(b.rules, autolink.Rule{Keyword: title, Href: e.Href()})

	list, ok := n.Attr("autolinks")
	if !ok {
		return nil
	}
	for keyword := range strings.SplitSeq(list, ",") {
		if b.trim {
			keyword = strings.TrimSpace(keyword)
		}
		if len(keyword) == 0 {
			b.log.Warn("Empty keyword in autolinks, skipping", zap.String("title", title), zap.String("autolinks", list))
			continue
		}
		b.rules = append(b.rules, autolink.Rule{Keyword: keyword, Href: e.Href()})
	}
	return nil
}
