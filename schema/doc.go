// Copyright 2018 Andrew Fort

// Package schema provides the RCI schema tree: the settings and
// commands a device publishes, and the value rendering of that tree.
//
// A schema is assembled once, eagerly, from four kinds of node:
//
//   Leaf
//       A single value described by its data type, access mode and
//       optional metadata. A plain Leaf has no live value and renders
//       as an empty element.
//
//   SimpleLeaf
//       A Leaf bridged to device state by an Accessor (read) and a
//       Setter (write). Render calls the accessor; only request
//       dispatch calls the setter.
//
//   Branch
//       An ordered group of child nodes. Render renders every child
//       in declaration order inside the branch's element.
//
//   Target
//       A Branch representing a command. A Target with a Callback
//       receives the raw request payload and owns the response.
//
// Every node carries an attribute catalog (the attributes, and their
// legal values, accepted on its element) and an error catalog. The
// catalogs are used by the dispatch package to address one of several
// same-named instances, and by the descriptor package to describe the
// tree.
//
// Once in service the tree is read only. Live state changes only
// inside accessors, setters and callbacks.
package schema
