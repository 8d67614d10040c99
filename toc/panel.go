package toc

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"hammock/render/htmlesc"
)

// DefaultTitle is used for TOC panel when document does not specify one.
const DefaultTitle = "Contents"

// Panel renders navigation panel listing all entries in document order.
// Without entries the panel is still produced, just empty.
func (t *Table) Panel(title string) string {
	var sb strings.Builder
	sb.WriteString(`<div class="hammock-toc-outer">`)
	sb.WriteString(`<div class="hammock-toc-title">`)
	sb.WriteString(htmlesc.Text(title))
	sb.WriteString(`</div>`)
	for _, e := range t.Entries {
		fmt.Fprintf(&sb, `<div id="%s" class="hammock-toc-%s"><a href="%s">%s</a></div>`,
			htmlesc.Attr(e.TocID()), e.Kind, htmlesc.Attr(e.Href()), htmlesc.Text(e.Title))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// scrollOffset is how far (in pixels) heading may be below the top of the
// window and still be considered current.
const scrollOffset = 32

const scriptTmpl = `<script>
(function() {
    var anchors = {{ toJson .Anchors }};
    function scrollTop() {
        return window.pageYOffset || document.documentElement.scrollTop || document.body.scrollTop;
    }
    function update() {
        var y = scrollTop(), current = null;
        for (var i = 0; i < anchors.length; i++) {
            var entry = document.getElementById('toc_' + anchors[i]);
            if (entry) {
                entry.style.fontWeight = '';
                entry.style.backgroundColor = '';
            }
            var heading = document.getElementById(anchors[i]);
            if (heading && y + {{ .Offset }} > heading.offsetTop) {
                current = entry;
            }
        }
        if (current) {
            current.style.fontWeight = 'bold';
            current.style.backgroundColor = '{{ .Highlight }}';
        }
    }
    window.addEventListener('load', function() {
        window.addEventListener('scroll', update);
        update();
    });
})();
</script>
`

// Script returns script highlighting TOC entry of the heading currently
// scrolled into view. Nothing is produced for tables without entries.
func (t *Table) Script() (string, error) {
	if len(t.Entries) == 0 {
		return "", nil
	}

	tmpl, err := template.New("toc-script").Funcs(sprig.FuncMap()).Parse(scriptTmpl)
	if err != nil {
		return "", fmt.Errorf("unable to parse TOC script template: %w", err)
	}

	anchors := make([]string, 0, len(t.Entries))
	for _, e := range t.Entries {
		anchors = append(anchors, e.AnchorID)
	}

	buf := new(bytes.Buffer)
	err = tmpl.Execute(buf, struct {
		Anchors   []string
		Offset    int
		Highlight string
	}{
		Anchors:   anchors,
		Offset:    scrollOffset,
		Highlight: "#d0d0d0",
	})
	if err != nil {
		return "", fmt.Errorf("unable to expand TOC script template: %w", err)
	}
	return buf.String(), nil
}
