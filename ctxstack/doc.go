// Package ctxstack implements the typed context stack carried alongside a
// request body through a chain of composed services.
//
// A stack is a right-nested pair: Cons[T, C] holds one field value of type T
// and a tail stack C, terminating in Empty. Stacks are immutable values;
// adding a field builds a new, larger stack (Push) and never mutates an
// existing one. This is what makes a stack safe to hand across goroutines
// and suspension points without synchronization: every in-flight request
// exclusively owns its stack.
//
// Field presence is primarily a compile-time property. Push and Pop are
// fully typed and form an identity pair on the head field. Deep, by-type
// access over an arbitrary stack cannot be expressed in Go's type system,
// so shapes that need it are generated ahead of time by ctxgen (see
// cmd/ctxgen): each generated shape carries one accessor method per field
// and satisfies a per-field capability interface, giving handlers
// compile-time proof that a field is present.
//
// For the remaining generic call sites, Lookup and Contains walk the stack
// at runtime by type assertion. They deliberately trade the compile-time
// guarantee for flexibility and are documented as such; generated shapes
// should be preferred in request paths.
package ctxstack
