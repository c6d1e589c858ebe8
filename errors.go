package psc

import "errors"

// ErrUnhandled is returned by a handler to signal that it explicitly did not
// handle the current event. The invoked handler list is then reported as
// unhandled and dispatch falls through to the enclosing state, if any. Any
// other non-nil handler error is treated the same way.
var ErrUnhandled = errors.New("event not handled")

// Definition validation errors.
var (
	ErrNilState       = errors.New("nil state type")
	ErrNoChildren     = errors.New("composite or parallel state requires at least one child")
	ErrNoGuards       = errors.New("joint state requires at least one guard")
	ErrSharedState    = errors.New("state type appears more than once in the tree")
	ErrJointAsChild   = errors.New("joint state cannot be a child state")
	ErrJointUnowned   = errors.New("joint state must be declared on a parallel state")
	ErrGuardUnreached = errors.New("joint guard is not reachable from the top state")
)
