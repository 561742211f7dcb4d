package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all HTML from visitor-supplied input. Applied on every public
// write path before persistence.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
