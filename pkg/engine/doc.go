// Package engine implements the secondary HTTP routing engine behind the
// bridge. It never opens a socket of its own: callers hand it a normalized
// Call and receive a Result through the Inject facility, which runs the full
// middleware chain and route-matching pipeline in process.
//
// The route table and middleware chain are built once at startup and are
// read-only afterwards, so concurrent Inject calls share them without
// locking.
package engine
