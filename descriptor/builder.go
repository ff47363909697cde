package descriptor

import (
	"strconv"
	"strings"

	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/golang/glog"
)

// Builder renders descriptors for nodes of one schema tree
type Builder struct {
	root schema.Node
}

// New returns a Builder for the tree rooted at root. Weak target
// references on attribute values are resolved as paths below root.
func New(root schema.Node) *Builder {
	return &Builder{root: root}
}

// Document returns the descriptors of the root's children in order.
// A leaf root yields its own descriptor.
func (b *Builder) Document() string {
	c, ok := b.root.(schema.Container)
	if !ok {
		return b.Node(b.root)
	}
	var out strings.Builder
	for _, child := range c.Children() {
		out.WriteString(b.Node(child))
	}
	return out.String()
}

// Node returns the descriptor of n and its subtree
func (b *Builder) Node(n schema.Node) string {
	switch n := n.(type) {
	case *schema.Leaf:
		return b.leaf(n)
	case *schema.SimpleLeaf:
		return b.leaf(&n.Leaf)
	case *schema.Branch:
		return b.branch(n)
	case *schema.Target:
		return b.target(n)
	}
	panic("descriptor: unknown node type")
}

func (b *Builder) branch(n *schema.Branch) string {
	attrs := xmlutil.Attrs{{Name: "element", Value: n.Name()}, {Name: "desc", Value: n.Desc()}}
	if avail, ok := n.DescriptorAvailable(); ok {
		attrs = append(attrs, xmlutil.Attr{Name: "dscr_avail", Value: strconv.FormatBool(avail)})
	}
	attrs = attrs.Add("access", n.Access().String()).Add("format", n.Format())

	var body strings.Builder
	b.catalogs(&body, n)
	for _, child := range n.Children() {
		body.WriteString(b.Node(child))
	}
	return closedTag("descriptor", body.String(), attrs)
}

func (b *Builder) leaf(n *schema.Leaf) string {
	desc := n.Desc()
	if desc == "" {
		desc = n.Name()
	}
	attrs := xmlutil.Attrs{
		{Name: "name", Value: n.Name()},
		{Name: "desc", Value: desc},
		{Name: "type", Value: n.Type().String()},
	}
	attrs = attrs.
		Add("default", n.Default()).
		Add("min", n.Min()).
		Add("max", n.Max()).
		Add("format", n.Format()).
		Add("access", n.Access().String()).
		Add("units", n.Units())

	var body strings.Builder
	b.catalogs(&body, n)
	return xmlutil.Tag("element", body.String(), attrs)
}

func (b *Builder) target(n *schema.Target) string {
	attrs := xmlutil.Attrs{
		{Name: "name", Value: "target"},
		{Name: "desc", Value: n.Desc()},
		{Name: "value", Value: n.Name()},
	}
	var body strings.Builder
	for _, child := range n.Children() {
		body.WriteString(b.Node(child))
	}
	return closedTag("attr", body.String(), attrs)
}

// catalogs writes n's attribute declarations followed by its error
// declarations.
func (b *Builder) catalogs(w *strings.Builder, n schema.Node) {
	for _, attr := range n.Attributes() {
		var values strings.Builder
		for _, v := range attr.Values {
			values.WriteString(b.value(n, v))
		}
		w.WriteString(xmlutil.Tag("attr", values.String(), xmlutil.Attrs{
			{Name: "name", Value: attr.Name},
			{Name: "desc", Value: attr.Desc},
		}))
	}
	for _, e := range n.Errors() {
		w.WriteString(xmlutil.Tag("error_descriptor", "", xmlutil.Attrs{
			{Name: "id", Value: e.ID},
			{Name: "desc", Value: e.Desc},
		}))
	}
}

func (b *Builder) value(owner schema.Node, v schema.AttributeValue) string {
	attrs := xmlutil.Attrs{
		{Name: "value", Value: v.Value},
		{Name: "desc", Value: v.Desc},
		{Name: "dscr_avail", Value: "true"},
	}
	if v.Target != "" {
		if _, ok := schema.Lookup(b.root, v.Target); ok {
			attrs = append(attrs, xmlutil.Attr{Name: "target", Value: v.Target})
		} else {
			glog.Warningf("descriptor: %s value %q: unresolved target %q", owner.Name(), v.Value, v.Target)
		}
	}
	return xmlutil.Tag("value", "", attrs)
}

// closedTag is xmlutil.Tag, but never self-closing; descriptor and
// target attr elements are containers even when empty.
func closedTag(name, body string, attrs xmlutil.Attrs) string {
	if body != "" {
		return xmlutil.Tag(name, body, attrs)
	}
	return "<" + name + attrs.String() + "></" + name + ">"
}
