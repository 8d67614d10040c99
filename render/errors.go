package render

import (
	"fmt"
	"strings"
)

// UnknownTagWarning records element without registered renderer. Such element
// is replaced with visible marker and rendering continues.
type UnknownTagWarning struct {
	Tag  string
	Path []string // tags of enclosing elements, outermost first
}

func (w UnknownTagWarning) Error() string {
	if len(w.Path) == 0 {
		return fmt.Sprintf("unknown tag <%s>", w.Tag)
	}
	return fmt.Sprintf("unknown tag <%s> in %s", w.Tag, strings.Join(w.Path, "/"))
}
