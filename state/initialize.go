package state

import (
	"time"

	"hammock/page"
)

// newLocalEnv creates a new LocalEnv with built-in page template.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:        time.Now(),
		Template:     page.DefaultTemplate,
		TemplateName: "built-in",
	}
}
