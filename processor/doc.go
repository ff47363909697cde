// Copyright 2018 Andrew Fort

// Package processor serves whole RCI request documents against a
// schema tree.
//
// The schema root holds one group per RCI command: query_setting,
// query_state and do_command. A request
//
//   <rci_request version="1.1">
//     <query_setting><serial index="1"><baud/></serial></query_setting>
//     <do_command target="reboot"><delay>5</delay></do_command>
//   </rci_request>
//
// is answered command by command, in request order, within one
// rci_reply element. A command that fails renders an RCI error
// element inside its own element; the remaining commands still run.
package processor
