package dispatch

import (
	"strings"

	"github.com/andaru/rci/rcierr"
	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// UnmatchedFunc is called with each request element dropped because
// it addresses no node under parent
type UnmatchedFunc func(parent schema.Node, e xmlutil.Element)

// Option is a Dispatcher option function
type Option func(*Dispatcher)

// WithUnmatched sets the function called for dropped request elements
func WithUnmatched(fn UnmatchedFunc) Option {
	return func(d *Dispatcher) { d.unmatched = fn }
}

// Dispatcher answers request fragments against a schema tree.
//
// Requests are handled synchronously. Request children are processed
// in order, each to completion before the next; nothing is rolled back
// when a later child fails.
type Dispatcher struct {
	matcher   Matcher
	unmatched UnmatchedFunc
}

// New returns a new Dispatcher configured by opts
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle answers the request fragment req addressed to node n.
//
// For a branch, a request without child elements is answered with the
// rendering of the whole branch. Otherwise each request child is
// resolved with Match and the addressed node's rendering is appended,
// wrapped in the branch's element. A Malformed match fails the request.
//
// For a target with a callback, the callback receives the raw content
// of req and its result is returned verbatim. Without a callback, each
// request child is handled by the target child of the same name and
// the results are concatenated.
//
// For a simple leaf with a setter, a request carrying attributes or
// text other than whitespace is written before the leaf is rendered.
func (d *Dispatcher) Handle(n schema.Node, req xmlutil.Element) (string, error) {
	switch n := n.(type) {
	case *schema.Branch:
		return d.handleBranch(n, req)
	case *schema.Target:
		return d.handleTarget(n, req)
	case *schema.SimpleLeaf:
		if n.Setter() != nil && (strings.TrimSpace(req.Text()) != "" || len(req.Attrs()) > 0) {
			if out, failed, err := d.set(n, req); err != nil || failed {
				return out, err
			}
		}
		return schema.Render(n)
	case *schema.Leaf:
		return schema.Render(n)
	}
	return "", errors.Errorf("dispatch: cannot handle %T", n)
}

func (d *Dispatcher) handleBranch(b *schema.Branch, req xmlutil.Element) (string, error) {
	children := req.Children()
	if len(children) == 0 {
		return schema.Render(b)
	}
	var body strings.Builder
	for _, child := range children {
		res, err := d.matcher.Match(b, child)
		if err != nil {
			return "", err
		}
		if res.Outcome != Matched {
			d.drop(b, child)
			continue
		}
		out, err := schema.Render(res.Node)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return xmlutil.Tag(b.Name(), body.String(), nil), nil
}

func (d *Dispatcher) handleTarget(t *schema.Target, req xmlutil.Element) (string, error) {
	if cb := t.Callback(); cb != nil {
		payload := xmlutil.Payload(req)
		glog.V(1).Infof("dispatch: target %s callback, %d byte payload", t.Name(), len(payload))
		out, err := cb(payload)
		if err != nil {
			return "", errors.Wrapf(err, "callback %s", t.Name())
		}
		return out, nil
	}
	var body strings.Builder
	for _, child := range req.Children() {
		node, ok := t.Get(child.Tag())
		if !ok {
			d.drop(t, child)
			continue
		}
		out, err := d.Handle(node, child)
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return body.String(), nil
}

// Set writes the leaf values carried by req's children below parent.
//
// Each request child selects a child of parent by tag and attributes,
// as Matcher.Instance does. A selected branch or target is echoed with
// the request's attributes and every nested request element is set
// below it. A selected simple leaf is written through its setter with
// the element's text and attributes and echoed as an empty element.
// Leaves without a setter are skipped.
//
// A setter returning a *rcierr.Error is reported inside the leaf's
// element, with the description taken from the leaf's error catalog
// if the error has none. Any other setter error fails the request;
// values already written stay written.
func (d *Dispatcher) Set(parent schema.Container, req xmlutil.Element) (string, error) {
	var body strings.Builder
	for _, child := range req.Children() {
		node, ok := d.matcher.Instance(parent, child)
		if !ok {
			d.drop(parent, child)
			continue
		}
		var (
			out string
			err error
		)
		switch node := node.(type) {
		case schema.Container:
			out, err = d.Set(node, child)
			out = xmlutil.Tag(node.Name(), out, xmlutil.SortedAttrs(child.Attrs()))
		case *schema.SimpleLeaf:
			if node.Setter() == nil {
				glog.V(1).Infof("dispatch: %s has no setter", node.Name())
				continue
			}
			out, _, err = d.set(node, child)
		default:
			glog.V(1).Infof("dispatch: %s %s is not writable", node.Kind(), node.Name())
			continue
		}
		if err != nil {
			return "", err
		}
		body.WriteString(out)
	}
	return body.String(), nil
}

// set writes req to l. It returns the leaf's element, and failed true
// if the setter reported an rcierr.Error, which is rendered inside the
// element. Other setter errors are returned.
func (d *Dispatcher) set(l *schema.SimpleLeaf, req xmlutil.Element) (out string, failed bool, err error) {
	glog.V(1).Infof("dispatch: set %s", l.Name())
	if err = l.Setter()(req.Text(), req.Attrs()); err == nil {
		return xmlutil.Tag(l.Name(), "", nil), false, nil
	}
	e, ok := rcierr.As(err)
	if !ok {
		return "", true, errors.Wrapf(err, "setter %s", l.Name())
	}
	if e.Desc == "" {
		e = rcierr.FromCatalog(l, e.ID, rcierr.WithHint(e.Hint))
	}
	return xmlutil.Tag(l.Name(), e.XML(), nil), true, nil
}

func (d *Dispatcher) drop(parent schema.Node, e xmlutil.Element) {
	glog.V(1).Infof("dispatch: dropped <%s> under %s %s", e.Tag(), parent.Kind(), parent.Name())
	if d.unmatched != nil {
		d.unmatched(parent, e)
	}
}
