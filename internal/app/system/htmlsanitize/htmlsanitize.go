// Package htmlsanitize strips dangerous markup from user-supplied text
// before it is stored. Names and descriptions entered through the API are
// plain text; Strip removes all tags. Sanitize keeps basic formatting for
// fields that allow it.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Strip removes all HTML, leaving plain text.
func Strip(s string) string {
	return strict.Sanitize(s)
}

// Sanitize keeps user-generated-content safe formatting (links, emphasis,
// lists) and removes scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}
