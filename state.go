package psc

// StateKind discriminates the node kinds of the declared tree.
type StateKind int

const (
	// KindSimple is a leaf state.
	KindSimple StateKind = iota
	// KindComposite is an exclusive-OR container: at most one active child.
	KindComposite
	// KindParallel is an AND container of concurrent regions.
	KindParallel
	// KindJoint is a synchronization point over a set of guard states.
	KindJoint
)

func (k StateKind) String() string {
	switch k {
	case KindComposite:
		return "composite"
	case KindParallel:
		return "parallel"
	case KindJoint:
		return "joint"
	default:
		return "simple"
	}
}

// StateType is one node of the declared state tree. StateTypes are built by
// the Simple, Composite, Parallel and Joint constructors, validated and
// indexed by NewDefinition, and fixed for the lifetime of a definition.
//
// The same StateType value is the transition target currency: handlers pass
// it to Chart.Transit, and per-parent target indexes resolve it to a branch.
type StateType struct {
	name     string
	kind     StateKind
	children []*StateType // composite and parallel branches, declared order
	joints   []*StateType // parallel only
	guards   []*StateType // joint only, as declared

	entry  handlerTable
	exit   handlerTable
	events handlerTable

	// Built by NewDefinition.
	targetIndex    map[*StateType]int // descendant -> immediate branch index
	expandedGuards []*StateType       // joint only, concrete guard set
}

// StateOption configures a StateType under construction.
type StateOption func(*StateType)

// OnEntry registers an entry handler for the given event kind. Use
// KindDefault (or OnEnter) for the untyped fallback list.
func OnEntry(kind EventKind, h Handler) StateOption {
	return func(s *StateType) { s.entry.add(kind, h) }
}

// OnEnter registers a default entry handler, run on plain entry and as the
// fallback when no typed entry handler matched.
func OnEnter(h Handler) StateOption {
	return OnEntry(KindDefault, h)
}

// OnExit registers a default exit handler.
func OnExit(h Handler) StateOption {
	return OnExitFor(KindDefault, h)
}

// OnExitFor registers an exit handler for the given event kind.
func OnExitFor(kind EventKind, h Handler) StateOption {
	return func(s *StateType) { s.exit.add(kind, h) }
}

// OnEvent registers an event handler for the given event kind.
func OnEvent(kind EventKind, h Handler) StateOption {
	return func(s *StateType) { s.events.add(kind, h) }
}

// OnAnyEvent registers a default event handler, run when no typed event
// handler matched or a typed one declined.
func OnAnyEvent(h Handler) StateOption {
	return func(s *StateType) { s.events.add(KindDefault, h) }
}

func newStateType(name string, kind StateKind, opts []StateOption) *StateType {
	s := &StateType{
		name:   name,
		kind:   kind,
		entry:  handlerTable{},
		exit:   handlerTable{},
		events: handlerTable{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simple declares a leaf state.
func Simple(name string, opts ...StateOption) *StateType {
	return newStateType(name, KindSimple, opts)
}

// Composite declares an exclusive container. The first child is the default
// initial state when the composite is entered without a specific target.
func Composite(name string, children []*StateType, opts ...StateOption) *StateType {
	s := newStateType(name, KindComposite, opts)
	s.children = children
	return s
}

// Parallel declares a concurrent container. Every child is a region with its
// own active state; joints are synchronization points checked as additional
// active members while their guard sets are fully active.
func Parallel(name string, children, joints []*StateType, opts ...StateOption) *StateType {
	s := newStateType(name, KindParallel, opts)
	s.children = children
	s.joints = joints
	return s
}

// Joint declares an AND-join over guard states. A guard may itself be a
// composite or parallel state; it is expanded to its full membership when
// the definition is built.
func Joint(name string, guards []*StateType, opts ...StateOption) *StateType {
	s := newStateType(name, KindJoint, opts)
	s.guards = guards
	return s
}

// Name returns the declared state name.
func (s *StateType) Name() string { return s.name }

// Kind returns the node kind.
func (s *StateType) Kind() StateKind { return s.kind }

// Children returns the declared child branches (composite and parallel).
func (s *StateType) Children() []*StateType { return s.children }

// Joints returns the joint states declared on a parallel state.
func (s *StateType) Joints() []*StateType { return s.joints }

// Guards returns the declared guard states of a joint.
func (s *StateType) Guards() []*StateType { return s.guards }

// contains reports whether target is s itself or any descendant branch
// state. Joints and guard expansion do not participate: a joint is never a
// valid transition target through its owner.
func (s *StateType) contains(target *StateType) bool {
	if s == target {
		return true
	}
	if s.targetIndex == nil {
		return false
	}
	_, ok := s.targetIndex[target]
	return ok
}

// branch returns the index of the immediate child branch containing target,
// or -1 when target is not a descendant.
func (s *StateType) branch(target *StateType) int {
	if idx, ok := s.targetIndex[target]; ok {
		return idx
	}
	return -1
}

// addTargets appends the concrete target states this node stands for when
// used as a joint guard: the node itself plus, for a joint, its expanded
// guard set.
func (s *StateType) addTargets(targets []*StateType) []*StateType {
	if s.kind == KindJoint {
		return append(targets, s.expandedGuards...)
	}
	return append(targets, s)
}
