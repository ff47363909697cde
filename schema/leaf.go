package schema

// Value is a leaf's rendered value: the element body and any
// attributes to render on the element.
type Value struct {
	Body  string
	Attrs map[string]string
}

// Text returns a Value with body and no attributes
func Text(body string) Value { return Value{Body: body} }

// Accessor reads a simple leaf's live value
type Accessor func() (Value, error)

// Setter writes a simple leaf's live value from a request element's
// body and attributes
type Setter func(body string, attrs map[string]string) error

// Leaf is a node holding a single value. A plain Leaf has no access to
// live state and renders as an empty element.
type Leaf struct {
	base
	dtype  DType
	min    string
	max    string
	def    string
	format string
	access Access
	units  string
}

// NewLeaf returns a new Leaf. NewLeaf panics if name is empty.
func NewLeaf(name string, opts ...Option) *Leaf {
	return newLeaf(name, newOptions(opts))
}

func newLeaf(name string, o *options) *Leaf {
	l := &Leaf{
		base:   newBase(name, o),
		dtype:  o.dtype,
		min:    o.min,
		max:    o.max,
		def:    o.def,
		format: o.format,
		access: o.access,
		units:  o.units,
	}
	if l.dtype == "" {
		l.dtype = TypeString
	}
	if l.access == AccessNone {
		l.access = AccessReadOnly
	}
	return l
}

func (l *Leaf) Kind() Kind { return KindLeaf }

// Type returns the leaf's data type
func (l *Leaf) Type() DType { return l.dtype }

// Min, Max, Default, Format and Units return the leaf's optional
// metadata; the empty string means unset.
func (l *Leaf) Min() string     { return l.min }
func (l *Leaf) Max() string     { return l.max }
func (l *Leaf) Default() string { return l.def }
func (l *Leaf) Format() string  { return l.format }
func (l *Leaf) Units() string   { return l.units }

// Access returns the leaf's access mode
func (l *Leaf) Access() Access { return l.access }

// SimpleLeaf is a Leaf bridged to live state by an optional Accessor
// and Setter.
type SimpleLeaf struct {
	Leaf
	accessor Accessor
	setter   Setter
}

// NewSimpleLeaf returns a new SimpleLeaf, using the WithAccessor and
// WithSetter options. NewSimpleLeaf panics if name is empty.
func NewSimpleLeaf(name string, opts ...Option) *SimpleLeaf {
	o := newOptions(opts)
	return &SimpleLeaf{Leaf: *newLeaf(name, o), accessor: o.accessor, setter: o.setter}
}

func (l *SimpleLeaf) Kind() Kind { return KindSimpleLeaf }

// Accessor returns the leaf's accessor, or nil
func (l *SimpleLeaf) Accessor() Accessor { return l.accessor }

// Setter returns the leaf's setter, or nil
func (l *SimpleLeaf) Setter() Setter { return l.setter }
