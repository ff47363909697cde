// Copyright 2018 Andrew Fort

// Package dispatch resolves RCI request fragments against a schema
// tree and assembles the response fragments.
//
// A Matcher decides which schema node a request element addresses.
// Several sibling instances may share a tag and differ only in the
// attribute values they accept, so an element such as
//
//   <port id="2"><speed/></port>
//
// addresses the speed leaf of whichever port instance declares id=2.
// Match reports one of three outcomes: Matched, NoMatch or Malformed.
//
// A Dispatcher answers requests. Handle reads: branches render the
// addressed nodes, targets either hand the raw request to their
// callback or dispatch structurally to their children. Set writes
// leaf values through their setters.
//
// Request elements that address nothing are dropped from the
// response. They are logged at glog V(1) and reported to the
// function given by WithUnmatched, if any.
package dispatch
