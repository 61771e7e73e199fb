// Package sanitize strips unsafe markup from user-supplied rich text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "u", "strike", "sub", "sup", "h1", "h2",
		"code", "pre", "q", "blockquote", "ul", "ol", "li", "span",
		"table", "th", "tr", "td",
	)
	return p
}()

// HTML returns the input with everything outside the allowed element set
// removed. Scripts, iframes, forms, event handlers and all attributes are
// dropped.
func HTML(dirty string) string {
	return strings.TrimSpace(policy.Sanitize(dirty))
}
