package pypage

import "github.com/yosssi/gohtml"

// Prettify reformats rendered HTML output. It is a pass-through
// post-processor outside the render pipeline: callers (typically the CLI's
// prettify flag) apply it to the fully rendered text.
func Prettify(text string) string {
	return gohtml.Format(text)
}
