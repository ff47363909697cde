package xmlutil

import (
	"sort"
	"strings"
)

// Attr is a single XML attribute
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered list of XML attributes
type Attrs []Attr

// SortedAttrs returns the contents of m as Attrs, sorted lexically by
// attribute name.
func SortedAttrs(m map[string]string) (a Attrs) {
	for k, v := range m {
		a = append(a, Attr{Name: k, Value: v})
	}
	if len(a) > 0 {
		sort.Slice(a, func(i int, j int) bool { return a[i].Name < a[j].Name })
	}
	return a
}

// Add appends the attribute name=value if value is non-empty
func (a Attrs) Add(name, value string) Attrs {
	if value == "" {
		return a
	}
	return append(a, Attr{Name: name, Value: value})
}

// String returns the attributes as they appear in a start tag,
// each preceded by a space.
func (a Attrs) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a Attrs) write(b *strings.Builder) {
	for _, attr := range a {
		b.WriteString(" ")
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(Escape(attr.Value))
		b.WriteString(`"`)
	}
}
