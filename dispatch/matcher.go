package dispatch

import (
	"fmt"

	"github.com/andaru/rci/rcierr"
	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/golang/glog"
)

// Outcome is the kind of Result returned by Matcher.Match
type Outcome int

const (
	// NoMatch means no schema node is addressed by the element
	NoMatch Outcome = iota
	// Matched means Result.Node is the addressed node
	Matched
	// Malformed means the element cannot address any node
	Malformed
)

func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Matched:
		return "matched"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the result of a match
type Result struct {
	Outcome Outcome
	// Node is the deepest matched schema node
	Node schema.Node
	// Elem is the request element that addressed Node
	Elem xmlutil.Element
}

// Matcher resolves request elements to schema nodes by tag and
// attribute values.
//
// A schema node's legal set is every (attribute, value) pair its
// attribute catalog allows. An element matches a node at one level
// when the tag equals the node's name and every attribute on the
// element is in the node's legal set; the element may carry fewer
// attributes than the node declares.
type Matcher struct{}

// Match returns the node under parent addressed by e.
//
// Children of parent are tried in declaration order and the first to
// match at this level is taken; later siblings are not considered
// even if the rest of the lookup fails. An element without child
// elements resolves to the node it matched. An element with exactly
// one child element continues the lookup below the matched node with
// that child. An element with more than one child element cannot
// address a single node: the outcome is Malformed and the error
// is a rcierr.QualifierError.
func (m Matcher) Match(parent schema.Container, e xmlutil.Element) (Result, error) {
	node, ok := m.Instance(parent, e)
	if !ok {
		return Result{Outcome: NoMatch}, nil
	}
	nested := e.Children()
	switch len(nested) {
	case 0:
		return Result{Outcome: Matched, Node: node, Elem: e}, nil
	case 1:
		c, ok := node.(schema.Container)
		if !ok {
			glog.V(2).Infof("dispatch: <%s> nests <%s> below %s %s", e.Tag(), nested[0].Tag(), node.Kind(), node.Name())
			return Result{Outcome: NoMatch}, nil
		}
		return m.Match(c, nested[0])
	default:
		return Result{Outcome: Malformed}, rcierr.MultiChildQualifier(e.Tag(), len(nested))
	}
}

// Instance returns the first child of parent that e matches at this
// level, by tag and attributes only. Nested elements of e are not
// considered.
func (m Matcher) Instance(parent schema.Container, e xmlutil.Element) (schema.Node, bool) {
	attrs := e.Attrs()
	for _, child := range parent.Children() {
		if child.Name() != e.Tag() {
			continue
		}
		if legal := legalSet(child); legal.contains(attrs) {
			glog.V(2).Infof("dispatch: <%s> matched %s %s", e.Tag(), child.Kind(), child.Name())
			return child, true
		}
	}
	return nil, false
}

type pair struct{ name, value string }

type pairSet map[pair]struct{}

// legalSet returns the cross product of n's declared attributes and
// their legal values. An attribute with no legal values contributes
// no pairs.
func legalSet(n schema.Node) pairSet {
	s := pairSet{}
	for _, attr := range n.Attributes() {
		for _, v := range attr.Values {
			s[pair{attr.Name, v.Value}] = struct{}{}
		}
	}
	return s
}

func (s pairSet) contains(attrs map[string]string) bool {
	for name, value := range attrs {
		if _, ok := s[pair{name, value}]; !ok {
			return false
		}
	}
	return true
}
