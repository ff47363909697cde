package xmlutil

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
)

// Element is a parsed request element, as seen by the dispatch core.
//
// It is the whole of the core's dependency on the XML facility; the
// xmlquery backed implementation is returned by Parse and Wrap.
type Element interface {
	// Tag is the element's local name
	Tag() string
	// Attrs returns the element's attributes, excluding namespace
	// declarations. The map is a copy.
	Attrs() map[string]string
	// Children returns the element children in document order
	Children() []Element
	// Text is the character data before the first child element (or
	// all character data, for an element without element children)
	Text() string
	// Tail is the character data following the element inside its
	// parent, up to the next sibling element
	Tail() string
	// XML returns the element and its subtree serialized verbatim
	XML() string
}

// Parse parses an XML document from r and returns its root element.
func Parse(r io.Reader) (Element, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return Wrap(n), nil
		}
	}
	return nil, errors.New("missing root element")
}

// ParseString is Parse for documents held in a string.
func ParseString(s string) (Element, error) { return Parse(strings.NewReader(s)) }

// Wrap returns the Element for the xmlquery element node n.
// Wrap panics if n is not an element node.
func Wrap(n *xmlquery.Node) Element {
	if n == nil || n.Type != xmlquery.ElementNode {
		panic("xmlutil.Wrap: not an element node")
	}
	return &element{n: n}
}

type element struct{ n *xmlquery.Node }

func (e *element) Tag() string { return e.n.Data }

func (e *element) Attrs() map[string]string {
	m := make(map[string]string, len(e.n.Attr))
	for _, attr := range e.n.Attr {
		if attr.Name.Local == "xmlns" || attr.Name.Space == "xmlns" {
			continue
		}
		name := attr.Name.Local
		if attr.Name.Space != "" {
			name = attr.Name.Space + ":" + name
		}
		m[name] = attr.Value
	}
	return m
}

func (e *element) Children() (children []Element) {
	for n := e.n.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			children = append(children, &element{n: n})
		}
	}
	return children
}

func (e *element) Text() string { return charData(e.n.FirstChild) }

func (e *element) Tail() string { return charData(e.n.NextSibling) }

func (e *element) XML() string {
	return e.n.OutputXMLWithOptions(xmlquery.WithOutputSelf(), xmlquery.WithEmptyTagSupport(), xmlquery.WithPreserveSpace())
}

// charData concatenates text and CDATA siblings starting at n,
// stopping at the first element.
func charData(n *xmlquery.Node) string {
	var b strings.Builder
	for ; n != nil && n.Type != xmlquery.ElementNode; n = n.NextSibling {
		switch n.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(n.Data)
		}
	}
	return b.String()
}

// Payload reconstructs the raw content of e: its leading text, then
// each child element serialized verbatim followed by that child's
// trailing text.
func Payload(e Element) string {
	var b strings.Builder
	b.WriteString(e.Text())
	for _, child := range e.Children() {
		b.WriteString(child.XML())
		b.WriteString(child.Tail())
	}
	return b.String()
}
