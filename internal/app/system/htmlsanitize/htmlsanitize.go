// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from user-submitted content
// before it is stored. Tutorials are rendered as rich text by clients, so
// script injection has to be stopped at write time.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows the usual user-generated-content tags (formatting, lists,
// links, images) and nothing executable.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with all disallowed tags and attributes removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
