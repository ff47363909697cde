// Copyright 2018 Andrew Fort

// Package descriptor renders an RCI schema tree as a descriptor
// document, the self-description a client queries to learn the
// settings, state and commands a device publishes.
//
// Branches render as descriptor elements, leaves as element elements
// and targets as a "target" attr wrapping their parameter
// descriptors:
//
//   <descriptor element="serial" desc="Serial port">
//     <attr name="index" desc="Port">
//       <value value="1" desc="Port 1" dscr_avail="true"/>
//     </attr>
//     <element name="baud" desc="Baud rate" type="uint32" access="read_write"/>
//   </descriptor>
//
// Descriptors describe only the static tree; no accessor is called.
package descriptor
