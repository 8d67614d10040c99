// Package autolink turns plain text mentions of keywords into hyperlinks.
//
// Rules are applied one after another, longest keyword first. Every keyword
// that gets wrapped into a hyperlink is re-emitted with an empty HTML comment
// after each of its characters, so text already linked by a longer keyword no
// longer contains any shorter keyword literally and cannot be linked twice.
// Rendered output is visually unaffected.
//
// Replacement is purely textual. Keyword may still match inside attribute
// values or character references present in the text (keyword "gt" will break
// "&gt;"), callers are expected to choose keywords accordingly.
package autolink

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"hammock/render/htmlesc"
)

// marker separates keyword characters in the linked copy.
const marker = "<!---->"

// Rule links every occurrence of Keyword to Href.
type Rule struct {
	Keyword string
	Href    string
}

// Sort orders rules by keyword length (in characters), longest first, keeping
// encounter order for keywords of equal length.
func Sort(rules []Rule) {
	slices.SortStableFunc(rules, func(a, b Rule) int {
		return cmp.Compare(utf8.RuneCountInString(b.Keyword), utf8.RuneCountInString(a.Keyword))
	})
}

// Sorted reports whether rules are in the order Sort produces.
func Sorted(rules []Rule) bool {
	for i := 1; i < len(rules); i++ {
		if utf8.RuneCountInString(rules[i].Keyword) > utf8.RuneCountInString(rules[i-1].Keyword) {
			return false
		}
	}
	return true
}

// Linker applies frozen set of rules. Zero value links nothing.
type Linker struct {
	rules        []Rule
	replacements []string
}

// NewLinker copies and sorts rules. Rules with empty keywords are dropped -
// empty keyword matches at every position.
func NewLinker(rules []Rule) *Linker {
	l := &Linker{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if len(r.Keyword) == 0 {
			continue
		}
		l.rules = append(l.rules, r)
	}
	Sort(l.rules)

	l.replacements = make([]string, len(l.rules))
	for i, r := range l.rules {
		l.replacements[i] = Link(r)
	}
	return l
}

// Rules returns sorted rules linker uses. Result must not be modified.
func (l *Linker) Rules() []Rule {
	if l == nil {
		return nil
	}
	return l.rules
}

// Apply links keywords in text. Text is expected to be HTML-escaped already.
func (l *Linker) Apply(text string) string {
	if l == nil || len(text) == 0 {
		return text
	}
	for i, r := range l.rules {
		text = strings.ReplaceAll(text, r.Keyword, l.replacements[i])
	}
	return text
}

// Apply links keywords in text using rules in the order given. Rules must be
// sorted (see Sort) for longest match to win.
func Apply(text string, rules []Rule) string {
	for _, r := range rules {
		if len(r.Keyword) == 0 {
			continue
		}
		text = strings.ReplaceAll(text, r.Keyword, Link(r))
	}
	return text
}

// Link returns hyperlink markup replacing a single keyword occurrence. Href is
// escaped for attribute context.
func Link(r Rule) string {
	var sb strings.Builder
	sb.Grow(len(r.Href) + len(r.Keyword)*(len(marker)+1) + 16)
	sb.WriteString(`<a href="`)
	sb.WriteString(htmlesc.Attr(r.Href))
	sb.WriteString(`">`)
	sb.WriteString(Interleave(r.Keyword))
	sb.WriteString(`</a>`)
	return sb.String()
}

// Interleave puts empty HTML comment after every character of s.
func Interleave(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * (len(marker) + 1))
	for _, c := range s {
		sb.WriteRune(c)
		sb.WriteString(marker)
	}
	return sb.String()
}
