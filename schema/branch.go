package schema

import (
	"strings"
	"sync"
)

// Branch is a node containing only other nodes, in declaration order
type Branch struct {
	base
	access    Access
	format    string
	dscrAvail *bool

	mu       sync.RWMutex
	children []Node
}

// NewBranch returns a new Branch. NewBranch panics if name is empty.
func NewBranch(name string, opts ...Option) *Branch {
	return newBranch(name, newOptions(opts))
}

func newBranch(name string, o *options) *Branch {
	return &Branch{base: newBase(name, o), access: o.access, format: o.format, dscrAvail: o.dscrAvail}
}

func (b *Branch) Kind() Kind { return KindBranch }

// Attach appends children to the branch and returns the branch, for
// chaining. It is used while assembling the schema tree; the tree is
// not modified once in service.
func (b *Branch) Attach(children ...Node) *Branch {
	for _, child := range children {
		if child == nil {
			panic("schema: Attach with nil child")
		}
	}
	b.mu.Lock()
	b.children = append(b.children, children...)
	b.mu.Unlock()
	return b
}

// Children returns a point-in-time copy of the branch's children
func (b *Branch) Children() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Node(nil), b.children...)
}

// Get returns the first child named name
func (b *Branch) Get(name string) (Node, bool) {
	for _, child := range b.Children() {
		if child.Name() == name {
			return child, true
		}
	}
	return nil, false
}

// Access returns the branch's declared access mode, if any
func (b *Branch) Access() Access { return b.access }

// Format returns the branch's declared format, if any
func (b *Branch) Format() string { return b.format }

// DescriptorAvailable returns the dscr_avail flag and whether it was set
func (b *Branch) DescriptorAvailable() (avail, ok bool) {
	if b.dscrAvail == nil {
		return false, false
	}
	return *b.dscrAvail, true
}

// Callback handles a command's raw request payload, returning the
// response verbatim
type Callback func(payload string) (string, error)

// Target is a branch representing an invocable command. When it has
// a Callback, the callback handles all requests to the target and
// any children serve only as parameter documentation.
type Target struct {
	Branch
	callback Callback
}

// NewTarget returns a new Target, using the WithCallback option.
// NewTarget panics if name is empty.
func NewTarget(name string, opts ...Option) *Target {
	o := newOptions(opts)
	return &Target{Branch: Branch{base: newBase(name, o), access: o.access, format: o.format, dscrAvail: o.dscrAvail}, callback: o.callback}
}

func (t *Target) Kind() Kind { return KindTarget }

// Attach appends children to the target and returns the target
func (t *Target) Attach(children ...Node) *Target {
	t.Branch.Attach(children...)
	return t
}

// Callback returns the target's callback, or nil
func (t *Target) Callback() Callback { return t.callback }

// Lookup resolves the slash separated path below root, one child name
// per path element. The empty path resolves to root.
func Lookup(root Node, path string) (Node, bool) {
	n := root
	for _, name := range strings.Split(strings.Trim(path, "/"), "/") {
		if name == "" {
			continue
		}
		c, ok := n.(Container)
		if !ok {
			return nil, false
		}
		if n, ok = c.Get(name); !ok {
			return nil, false
		}
	}
	return n, true
}
