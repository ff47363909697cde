// Copyright 2018 Andrew Fort

// Package loader builds RCI schema trees from YAML documents.
//
// A document describes the root branch:
//
//   name: root
//   children:
//     - name: query_setting
//       children:
//         - name: serial
//           attrs:
//             - name: index
//               values: [{value: "1"}, {value: "2"}]
//           children:
//             - {name: baud, type: uint32, access: read_write, value: "9600"}
//
// Nodes with children are branches unless kind says otherwise; nodes
// without are leaves. Every leaf is built as a schema.SimpleLeaf. A
// leaf with a value gets an in-memory accessor and setter holding it.
// Live functions are bound to nodes by slash separated path with
// WithAccessor, WithSetter and WithCallback.
package loader

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/andaru/rci/schema"
	"github.com/andaru/rci/xmlutil"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Node kinds
const (
	KindBranch = "branch"
	KindLeaf   = "leaf"
	KindTarget = "target"
)

// NodeDef is a schema node loaded from YAML
type NodeDef struct {
	Kind      string     `yaml:"kind"`
	Name      string     `yaml:"name"`
	Desc      string     `yaml:"desc"`
	Type      string     `yaml:"type"`
	Access    string     `yaml:"access"`
	Min       string     `yaml:"min"`
	Max       string     `yaml:"max"`
	Default   string     `yaml:"default"`
	Format    string     `yaml:"format"`
	Units     string     `yaml:"units"`
	DscrAvail *bool      `yaml:"dscr_avail"`
	Attrs     []AttrDef  `yaml:"attrs"`
	Errors    []ErrorDef `yaml:"errors"`
	Children  []NodeDef  `yaml:"children"`
	// Value is a leaf's initial value, held in memory
	Value *string `yaml:"value"`
}

// AttrDef is an attribute declaration
type AttrDef struct {
	Name   string     `yaml:"name"`
	Desc   string     `yaml:"desc"`
	Values []ValueDef `yaml:"values"`
}

// ValueDef is a legal attribute value. Target is the path of a related
// node, published in descriptors.
type ValueDef struct {
	Value  string `yaml:"value"`
	Desc   string `yaml:"desc"`
	Target string `yaml:"target"`
}

// ErrorDef is an error catalog entry
type ErrorDef struct {
	ID   string `yaml:"id"`
	Desc string `yaml:"desc"`
}

// Option binds live functions to the loaded tree
type Option func(*loader)

type binding struct {
	accessor schema.Accessor
	setter   schema.Setter
	callback schema.Callback
	used     bool
}

type loader struct {
	bindings map[string]*binding
}

func (l *loader) bind(path string) *binding {
	path = cleanPath(path)
	b, ok := l.bindings[path]
	if !ok {
		b = &binding{}
		l.bindings[path] = b
	}
	return b
}

// WithAccessor binds fn as the accessor of the leaf at path. It
// replaces any in-memory value accessor.
func WithAccessor(path string, fn schema.Accessor) Option {
	return func(l *loader) { l.bind(path).accessor = fn }
}

// WithSetter binds fn as the setter of the leaf at path
func WithSetter(path string, fn schema.Setter) Option {
	return func(l *loader) { l.bind(path).setter = fn }
}

// WithCallback binds fn as the callback of the target at path
func WithCallback(path string, fn schema.Callback) Option {
	return func(l *loader) { l.bind(path).callback = fn }
}

// Parse builds the schema tree described by the YAML document data.
//
// Paths given to options are relative to the root, so "serial/baud"
// names the baud leaf of the root's serial child. A binding applies to
// every node at its path, so instances sharing a name share it. A
// binding to a path with no node, or to a node of the wrong kind, is
// an error.
func Parse(data []byte, opts ...Option) (*schema.Branch, error) {
	var def NodeDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if err == io.EOF {
			return nil, errors.New("loader: empty document")
		}
		return nil, errors.Wrap(err, "loader")
	}
	return Build(def, opts...)
}

// Load reads and parses the YAML document in the named file
func Load(filename string, opts ...Option) (*schema.Branch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	root, err := Parse(data, opts...)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return root, nil
}

// Build builds the schema tree described by def, which must be a
// branch.
func Build(def NodeDef, opts ...Option) (*schema.Branch, error) {
	l := &loader{bindings: map[string]*binding{}}
	for _, opt := range opts {
		opt(l)
	}
	if kind := def.kind(); kind != KindBranch {
		return nil, errors.Errorf("loader: root %q is a %s, want a branch", def.Name, kind)
	}
	n, err := l.build(def, "")
	if err != nil {
		return nil, err
	}
	for path, b := range l.bindings {
		if !b.used {
			return nil, errors.Errorf("loader: no node at bound path %q", path)
		}
	}
	glog.V(1).Infof("loader: built schema %q", def.Name)
	return n.(*schema.Branch), nil
}

func (d NodeDef) kind() string {
	switch {
	case d.Kind != "":
		return d.Kind
	case len(d.Children) > 0:
		return KindBranch
	}
	return KindLeaf
}

// build builds the node for def at path, the path of the node relative
// to the root ("" for the root).
func (l *loader) build(def NodeDef, path string) (schema.Node, error) {
	if def.Name == "" {
		return nil, errors.Errorf("loader: unnamed node at %q", path)
	}
	opts, err := def.options()
	if err != nil {
		return nil, errors.Wrapf(err, "loader: %s", def.Name)
	}
	b := l.bindings[path]
	if b != nil {
		b.used = true
	}

	kind := def.kind()
	switch kind {
	case KindLeaf:
		if len(def.Children) > 0 {
			return nil, errors.Errorf("loader: leaf %s has children", def.Name)
		}
		if def.Value != nil {
			c := &cell{v: schema.Text(*def.Value)}
			opts = append(opts, schema.WithAccessor(c.get), schema.WithSetter(c.set))
		}
		if b != nil {
			if b.callback != nil {
				return nil, errors.Errorf("loader: callback bound to leaf %s", def.Name)
			}
			if b.accessor != nil {
				opts = append(opts, schema.WithAccessor(b.accessor))
			}
			if b.setter != nil {
				opts = append(opts, schema.WithSetter(b.setter))
			}
		}
		return schema.NewSimpleLeaf(def.Name, opts...), nil
	case KindBranch, KindTarget:
		if def.Value != nil {
			return nil, errors.Errorf("loader: %s %s has a value", kind, def.Name)
		}
		if b != nil && (b.accessor != nil || b.setter != nil) {
			return nil, errors.Errorf("loader: accessor or setter bound to %s %s", kind, def.Name)
		}
		var children []schema.Node
		for _, cdef := range def.Children {
			child, err := l.build(cdef, joinPath(path, cdef.Name))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if kind == KindBranch {
			if b != nil && b.callback != nil {
				return nil, errors.Errorf("loader: callback bound to branch %s", def.Name)
			}
			return schema.NewBranch(def.Name, opts...).Attach(children...), nil
		}
		if b != nil && b.callback != nil {
			opts = append(opts, schema.WithCallback(b.callback))
		}
		return schema.NewTarget(def.Name, opts...).Attach(children...), nil
	}
	return nil, errors.Errorf("loader: %s has unknown kind %q", def.Name, kind)
}

// options returns the schema options for def's metadata and catalogs
func (d NodeDef) options() ([]schema.Option, error) {
	opts := []schema.Option{
		schema.WithDesc(d.Desc),
		schema.WithMin(d.Min),
		schema.WithMax(d.Max),
		schema.WithDefault(d.Default),
		schema.WithFormat(d.Format),
		schema.WithUnits(d.Units),
	}
	if d.Type != "" {
		opts = append(opts, schema.WithType(schema.DType(d.Type)))
	}
	access, ok := schema.ParseAccess(d.Access)
	if !ok {
		return nil, errors.Errorf("unknown access %q", d.Access)
	}
	opts = append(opts, schema.WithAccess(access))
	if d.DscrAvail != nil {
		opts = append(opts, schema.WithDescriptorAvailable(*d.DscrAvail))
	}
	for _, a := range d.Attrs {
		if a.Name == "" {
			return nil, errors.New("attribute has no name")
		}
		var values []schema.AttributeValue
		for _, v := range a.Values {
			values = append(values, schema.AttributeValue{Value: v.Value, Desc: v.Desc, Target: v.Target})
		}
		opts = append(opts, schema.WithAttribute(a.Name, a.Desc, values...))
	}
	for _, e := range d.Errors {
		if e.ID == "" {
			return nil, errors.New("error entry has no id")
		}
		opts = append(opts, schema.WithError(e.ID, e.Desc))
	}
	return opts, nil
}

// cell holds a leaf value in memory. The body is kept as plain text
// and escaped when read.
type cell struct {
	mu sync.Mutex
	v  schema.Value
}

func (c *cell) get() (schema.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := schema.Value{Body: xmlutil.Escape(c.v.Body)}
	if len(c.v.Attrs) > 0 {
		v.Attrs = make(map[string]string, len(c.v.Attrs))
		for k, val := range c.v.Attrs {
			v.Attrs[k] = val
		}
	}
	return v, nil
}

func (c *cell) set(body string, attrs map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = schema.Value{Body: body, Attrs: attrs}
	return nil
}
