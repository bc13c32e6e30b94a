package desk

import "strings"

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Sanitize makes free text safe to place inside markup.
func Sanitize(s string) string {
	return markupReplacer.Replace(s)
}
