package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Tag returns the element name with attributes attrs wrapping body.
// An empty body yields a self-closing tag. The body is written as is,
// attribute values are escaped.
func Tag(name, body string, attrs Attrs) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	attrs.write(&b)
	if body == "" {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteString(">")
	b.WriteString(body)
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
	return b.String()
}

// Escape returns s with XML special characters escaped, suitable for
// use in attribute values or character data.
func Escape(s string) string {
	var b strings.Builder
	// strings.Builder writes do not fail
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
