// Package htmlesc has the escaping used for document text.
//
// Only angle brackets (and double quotes inside attributes) are replaced,
// ampersands pass through unchanged.
package htmlesc

import "strings"

var (
	textReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")
	attrReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Text escapes character data.
func Text(s string) string {
	return textReplacer.Replace(s)
}

// Attr escapes value to be placed inside double quoted attribute.
func Attr(s string) string {
	return attrReplacer.Replace(s)
}
