// Package page assembles final HTML page from rendered slots and template.
package page

import (
	_ "embed"
	"slices"
	"strings"
)

// DefaultTemplate is used when no external template is provided.
//
//go:embed default.html
var DefaultTemplate string

// Placeholder identifies template slot.
type Placeholder int

const (
	PlaceholderHead Placeholder = iota
	PlaceholderTOC
	PlaceholderBody
)

var placeholders = []Placeholder{PlaceholderHead, PlaceholderTOC, PlaceholderBody}

// Marker returns literal text replaced in template.
func (p Placeholder) Marker() string {
	switch p {
	case PlaceholderHead:
		return "<!--hammock:head-->"
	case PlaceholderTOC:
		return "<!--hammock:toc-->"
	case PlaceholderBody:
		return "<!--hammock:body-->"
	default:
		panic("unknown placeholder requested")
	}
}

func (p Placeholder) String() string {
	switch p {
	case PlaceholderHead:
		return "head"
	case PlaceholderTOC:
		return "toc"
	case PlaceholderBody:
		return "body"
	default:
		return "unknown"
	}
}

// Slots are rendered page regions.
type Slots struct {
	Head string
	TOC  string
	Body string
}

func (s Slots) content(p Placeholder) string {
	switch p {
	case PlaceholderHead:
		return s.Head
	case PlaceholderTOC:
		return s.TOC
	default:
		return s.Body
	}
}

type hit struct {
	pos, end int
	text     string
}

// Apply replaces first occurrence of every placeholder marker in tmpl with
// corresponding slot content. Markers are located in the template before any
// replacement, so slot content is never searched for markers and the result
// does not depend on substitution order. Slots whose markers are not present
// are dropped and reported back.
func Apply(tmpl string, slots Slots) (string, []Placeholder) {
	var (
		hits    = make([]hit, 0, len(placeholders))
		missing []Placeholder
		size    = len(tmpl)
	)
	for _, p := range placeholders {
		marker := p.Marker()
		pos := strings.Index(tmpl, marker)
		if pos < 0 {
			missing = append(missing, p)
			continue
		}
		text := slots.content(p)
		hits = append(hits, hit{pos: pos, end: pos + len(marker), text: text})
		size += len(text)
	}
	slices.SortFunc(hits, func(a, b hit) int { return a.pos - b.pos })

	var sb strings.Builder
	sb.Grow(size)
	last := 0
	for _, h := range hits {
		sb.WriteString(tmpl[last:h.pos])
		sb.WriteString(h.text)
		last = h.end
	}
	sb.WriteString(tmpl[last:])
	return sb.String(), missing
}
