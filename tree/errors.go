package tree

import "fmt"

// MissingAttributeError is returned when element lacks attribute it cannot be
// processed without.
type MissingAttributeError struct {
	Tag  string
	Attr string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("element <%s> is missing required attribute %q", e.Tag, e.Attr)
}
