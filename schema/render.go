package schema

import (
	"strings"

	"github.com/andaru/rci/xmlutil"
	"github.com/pkg/errors"
)

// Render returns the value rendering of n: its current value, or for
// branches and targets, the rendering of every child in order wrapped
// in the node's element.
//
// Only simple leaf accessors touch live state; an accessor error is
// returned wrapped with the leaf name.
func Render(n Node) (string, error) {
	switch n := n.(type) {
	case *Leaf:
		return xmlutil.Tag(n.Name(), "", nil), nil
	case *SimpleLeaf:
		return renderSimpleLeaf(n)
	case *Branch:
		return renderChildren(n.Name(), n.Children())
	case *Target:
		return renderChildren(n.Name(), n.Children())
	}
	return "", errors.Errorf("schema: cannot render %T", n)
}

func renderSimpleLeaf(l *SimpleLeaf) (string, error) {
	if l.accessor == nil {
		return xmlutil.Tag(l.Name(), "", nil), nil
	}
	v, err := l.accessor()
	if err != nil {
		return "", errors.Wrapf(err, "accessor %s", l.Name())
	}
	return xmlutil.Tag(l.Name(), v.Body, xmlutil.SortedAttrs(v.Attrs)), nil
}

func renderChildren(name string, children []Node) (string, error) {
	var body strings.Builder
	for _, child := range children {
		out, err := Render(child)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return xmlutil.Tag(name, body.String(), nil), nil
}

// CDATA wraps content in a CDATA section, for accessors returning
// bodies with markup characters.
func CDATA(content string) string { return "<![CDATA[" + content + "]]>" }
