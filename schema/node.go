package schema

import "fmt"

// Kind identifies which of the four node types a Node is
type Kind int

const (
	KindLeaf Kind = iota
	KindSimpleLeaf
	KindBranch
	KindTarget
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSimpleLeaf:
		return "simple-leaf"
	case KindBranch:
		return "branch"
	case KindTarget:
		return "target"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a named schema tree node.
//
// Node is implemented only by *Leaf, *SimpleLeaf, *Branch and *Target;
// consumers switch on the concrete type (or Kind) to render and
// dispatch.
type Node interface {
	Name() string
	Desc() string
	Kind() Kind
	// Attributes returns the node's attribute catalog
	Attributes() []Attribute
	// Errors returns the node's error catalog, in declaration order
	Errors() []ErrorDef
	// ErrorDesc returns the error catalog description for id
	ErrorDesc(id string) (string, bool)

	node()
}

// Container is a Node with children: a *Branch or a *Target
type Container interface {
	Node
	// Children returns a snapshot of the node's children
	Children() []Node
	// Get returns the first child named name
	Get(name string) (Node, bool)
}

// Attribute declares an attribute accepted on a node's element,
// along with its legal values.
type Attribute struct {
	Name   string
	Desc   string
	Values []AttributeValue
}

// AttributeValue is a legal value of an Attribute.
//
// Target optionally refers to another node in the tree by its slash
// separated path from the descriptor root. The reference is resolved
// when descriptors are built.
type AttributeValue struct {
	Value  string
	Desc   string
	Target string
}

// NewAttribute returns an Attribute with a private copy of values
func NewAttribute(name, desc string, values ...AttributeValue) Attribute {
	return Attribute{Name: name, Desc: desc, Values: append([]AttributeValue(nil), values...)}
}

// ErrorDef is an error catalog entry
type ErrorDef struct {
	ID   string
	Desc string
}

// base holds the fields common to all nodes
type base struct {
	name   string
	desc   string
	attrs  []Attribute
	errors []ErrorDef
}

func newBase(name string, o *options) base {
	if name == "" {
		panic("schema: node name must not be empty")
	}
	b := base{name: name, desc: o.desc}
	// catalogs are private to each node
	for _, a := range o.attrs {
		b.attrs = append(b.attrs, NewAttribute(a.Name, a.Desc, a.Values...))
	}
	b.errors = append(b.errors, o.errors...)
	return b
}

func (b *base) Name() string { return b.name }
func (b *base) Desc() string { return b.desc }

func (b *base) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(b.attrs))
	for _, a := range b.attrs {
		attrs = append(attrs, NewAttribute(a.Name, a.Desc, a.Values...))
	}
	return attrs
}

func (b *base) Errors() []ErrorDef { return append([]ErrorDef(nil), b.errors...) }

func (b *base) ErrorDesc(id string) (string, bool) {
	for _, e := range b.errors {
		if e.ID == id {
			return e.Desc, true
		}
	}
	return "", false
}

func (b *base) node() {}

// Option configures a node at construction. Options not applicable
// to the kind of node being constructed are ignored.
type Option func(*options)

type options struct {
	desc      string
	dtype     DType
	min       string
	max       string
	def       string
	format    string
	units     string
	access    Access
	dscrAvail *bool
	attrs     []Attribute
	errors    []ErrorDef
	accessor  Accessor
	setter    Setter
	callback  Callback
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDesc sets the node description
func WithDesc(desc string) Option { return func(o *options) { o.desc = desc } }

// WithType sets a leaf's data type (default TypeString)
func WithType(t DType) Option { return func(o *options) { o.dtype = t } }

// WithMin sets a leaf's advisory minimum
func WithMin(min string) Option { return func(o *options) { o.min = min } }

// WithMax sets a leaf's advisory maximum
func WithMax(max string) Option { return func(o *options) { o.max = max } }

// WithDefault sets a leaf's default value
func WithDefault(def string) Option { return func(o *options) { o.def = def } }

// WithFormat sets the node's format
func WithFormat(format string) Option { return func(o *options) { o.format = format } }

// WithUnits sets a leaf's units
func WithUnits(units string) Option { return func(o *options) { o.units = units } }

// WithAccess sets the node's access mode. Leaves default to
// AccessReadOnly, branches leave it undeclared.
func WithAccess(a Access) Option { return func(o *options) { o.access = a } }

// WithDescriptorAvailable sets a branch's dscr_avail flag
func WithDescriptorAvailable(avail bool) Option {
	return func(o *options) { o.dscrAvail = &avail }
}

// WithAttribute adds an attribute declaration
func WithAttribute(name, desc string, values ...AttributeValue) Option {
	return func(o *options) { o.attrs = append(o.attrs, NewAttribute(name, desc, values...)) }
}

// WithError adds an error catalog entry
func WithError(id, desc string) Option {
	return func(o *options) { o.errors = append(o.errors, ErrorDef{ID: id, Desc: desc}) }
}

// WithAccessor sets a simple leaf's value accessor
func WithAccessor(fn Accessor) Option { return func(o *options) { o.accessor = fn } }

// WithSetter sets a simple leaf's value setter
func WithSetter(fn Setter) Option { return func(o *options) { o.setter = fn } }

// WithCallback sets a target's request callback
func WithCallback(fn Callback) Option { return func(o *options) { o.callback = fn } }
