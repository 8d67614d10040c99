package convert

import (
	"fmt"
	"strings"

	"hammock/page"
)

// OutputWriteError is returned when rendered page could not be stored. No
// partial file is left at Path.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("unable to write output file %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

// MissingPlaceholderError is returned when page template lacks placeholders
// and configuration requires all of them.
type MissingPlaceholderError struct {
	Template string
	Missing  []page.Placeholder
}

func (e *MissingPlaceholderError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, p := range e.Missing {
		names = append(names, p.Marker())
	}
	return fmt.Sprintf("page template %s has no placeholders %s", e.Template, strings.Join(names, ", "))
}
