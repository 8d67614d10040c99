package render

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"hammock/tree"
)

// code produces literal blocks. Content is flattened to text (nested markup is
// dropped), dedented, escaped and autolinked - examples often mention chapter
// names.
func code(open, close string, inline bool) handler {
	return func(r *Renderer, sb *strings.Builder, n *tree.Node) error {
		if len(n.Children) > 0 {
			r.log.Debug("Markup inside code is rendered as text", zap.String("tag", n.Tag), zap.Int("children", len(n.Children)))
		}
		text := Dedent(n.PlainText())

		sb.WriteString(open)
		defer sb.WriteString(close)

		if syntax, ok := n.Attr("syntax"); ok && r.highlighter != nil {
			out, ok, err := r.highlighter.Highlight(text, syntax, inline)
			if err != nil {
				r.log.Warn("Unable to highlight code, using plain text", zap.String("syntax", syntax), zap.Error(err))
			} else if ok {
				sb.WriteString(out)
				return nil
			} else {
				r.log.Debug("No lexer for syntax, using plain text", zap.String("syntax", syntax))
			}
		}
		sb.WriteString(r.link(escape(text)))
		return nil
	}
}

// Dedent removes indentation of the first non-blank line from every line:
// exactly that many leading characters are cut from each line, blank lines
// included. Leading and trailing blank space of the result is trimmed.
func Dedent(text string) string {
	lines := strings.Split(text, "\n")

	shift := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		shift = len([]rune(line)) - len([]rune(trimmed))
		break
	}
	if shift < 0 {
		return ""
	}

	for i, line := range lines {
		runes := []rune(line)
		if len(runes) <= shift {
			lines[i] = ""
			continue
		}
		lines[i] = string(runes[shift:])
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
