/*
Package rci is a set of RCI (Remote Command Interface) device management
libraries.

An RCI device publishes a tree of settings, state and commands. Clients
query a descriptor of the tree, read and write values addressed by the
tree's element names, and invoke commands, all in XML documents that
mirror the tree's shape. Sibling instances of one element, such as the
serial ports of a device, are told apart by attribute values rather
than by name.

The libraries are layered:

	schema      the node tree: leaves, simple leaves, branches and targets
	descriptor  renders the tree's self-description
	dispatch    matches request elements to nodes and assembles responses
	processor   serves whole rci_request documents
	loader      builds trees from YAML
	rcierr      RCI error elements

See the rcitool command for a complete request processor driven by a
YAML schema.
*/
package rci
