package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colors code blocks using chroma. Output uses CSS classes, the
// matching stylesheet is put into page head.
type Highlighter struct {
	style  *chroma.Style
	block  *chromahtml.Formatter
	inline *chromahtml.Formatter
}

// StyleExists reports whether chroma knows the named style.
func StyleExists(name string) bool {
	return slices.Contains(styles.Names(), name)
}

func NewHighlighter(styleName string) (*Highlighter, error) {
	if !StyleExists(styleName) {
		return nil, fmt.Errorf("unknown highlighting style %q", styleName)
	}
	return &Highlighter{
		style:  styles.Get(styleName),
		block:  chromahtml.New(chromahtml.WithClasses(true)),
		inline: chromahtml.New(chromahtml.WithClasses(true), chromahtml.InlineCode(true)),
	}, nil
}

// CSS returns stylesheet for highlighted code.
func (h *Highlighter) CSS() (string, error) {
	var sb strings.Builder
	if err := h.block.WriteCSS(&sb, h.style); err != nil {
		return "", fmt.Errorf("unable to produce highlighting CSS: %w", err)
	}
	return sb.String(), nil
}

// Highlight returns colored HTML for src. It returns false when there is no
// lexer for the syntax.
func (h *Highlighter) Highlight(src, syntax string, inline bool) (string, bool, error) {
	lexer := lexers.Get(syntax)
	if lexer == nil {
		return "", false, nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", false, err
	}

	f := h.block
	if inline {
		f = h.inline
	}
	var sb strings.Builder
	if err := f.Format(&sb, h.style, it); err != nil {
		return "", false, err
	}
	return sb.String(), true, nil
}
