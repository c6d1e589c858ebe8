package psc

import "strings"

// instance is the runtime counterpart of a StateType. Exactly one instance
// exists per state type per chart; entry and exit only move configuration
// pointers, they never recreate instances.
type instance interface {
	// enter runs entry handlers and notifies linked joints.
	enter(event *Event)
	// exit notifies linked joints and runs exit handlers, tearing down any
	// active descendants first.
	exit(event *Event)
	// handle routes an event through the active configuration below this
	// instance, innermost first.
	handle(event *Event) HandleResult
	// initiate recursively establishes the default active configuration.
	initiate(event *Event)
	// exitForState exits the active branches not on the path to target.
	// A true result tells the caller to exit this instance itself.
	exitForState(target *StateType, event *Event) bool
	// enterForState enters the branch path toward target. A false result
	// is a transition error: an already-active sibling branch conflicts
	// with the requested path.
	enterForState(target *StateType, event *Event) bool
	// writeTo renders the active configuration below this instance.
	writeTo(b *strings.Builder)
	// activePaths appends the dotted active chains below this instance.
	activePaths(prefix string, paths []string) []string
}

// node carries what every tree-state instance shares: its type, the owning
// chart, and the joints observing it as a guard.
type node struct {
	typ          *StateType
	chart        *Chart
	linkedJoints []*jointInstance
}

func (n *node) linkJoint(j *jointInstance) {
	n.linkedJoints = append(n.linkedJoints, j)
}

// enterSelf runs this state's entry handlers, then decrements the counter of
// every linked joint. A joint reaching zero fires its own entry handlers
// synchronously, so the join observes its final guard fully entered.
func (n *node) enterSelf(event *Event) {
	n.typ.entry.dispatch(n.chart, event)
	for _, j := range n.linkedJoints {
		j.enterGuard(event)
	}
}

// exitSelf notifies linked joints before running this state's own exit
// handlers: an active joint fires its exit handlers while its synchronized
// configuration is still fully formed, then its counter increments.
func (n *node) exitSelf(event *Event) {
	for _, j := range n.linkedJoints {
		j.exitGuard(event)
	}
	n.typ.exit.dispatch(n.chart, event)
}

func (n *node) handleSelf(event *Event) HandleResult {
	return n.typ.events.dispatch(n.chart, event)
}

// simpleInstance is a leaf state.
type simpleInstance struct {
	node
}

func (s *simpleInstance) enter(event *Event) { s.enterSelf(event) }
func (s *simpleInstance) exit(event *Event)  { s.exitSelf(event) }

func (s *simpleInstance) handle(event *Event) HandleResult {
	return s.handleSelf(event)
}

func (s *simpleInstance) initiate(*Event) {}

// A leaf is always exited for any transition that reaches it.
func (s *simpleInstance) exitForState(*StateType, *Event) bool { return true }

func (s *simpleInstance) enterForState(*StateType, *Event) bool { return true }

func (s *simpleInstance) writeTo(b *strings.Builder) {
	b.WriteString(s.typ.name)
}

func (s *simpleInstance) activePaths(prefix string, paths []string) []string {
	return append(paths, prefix+s.typ.name)
}

// compositeInstance holds at most one active child.
type compositeInstance struct {
	node
	children []instance
	current  instance
}

func (s *compositeInstance) enter(event *Event) { s.enterSelf(event) }

func (s *compositeInstance) exit(event *Event) {
	if cur := s.current; cur != nil {
		s.current = nil
		cur.exit(event)
	}
	s.exitSelf(event)
}

func (s *compositeInstance) handle(event *Event) HandleResult {
	result := ResultUnknown
	if cur := s.current; cur != nil {
		result = cur.handle(event)
	}
	if result != ResultHandled {
		result = s.handleSelf(event)
	}
	return result
}

func (s *compositeInstance) initiate(event *Event) {
	cur := s.current
	if cur == nil {
		cur = s.children[0]
		cur.enter(event)
		s.current = cur
	}
	cur.initiate(event)
}

func (s *compositeInstance) exitForState(target *StateType, event *Event) bool {
	idx := s.typ.branch(target)
	if idx < 0 {
		// Target is not below this state, so this state itself must go.
		return true
	}
	cur := s.current
	if cur == nil {
		return false
	}
	if cur != s.children[idx] || cur.exitForState(target, event) {
		cur.exit(event)
		s.current = nil
	}
	return false
}

func (s *compositeInstance) enterForState(target *StateType, event *Event) bool {
	if target == s.typ {
		return true
	}
	idx := s.typ.branch(target)
	if idx < 0 {
		return false
	}
	cur := s.current
	if cur != nil && cur != s.children[idx] {
		// Another branch is already active: conflicting transition.
		return false
	}
	if cur == nil {
		cur = s.children[idx]
		cur.enter(event)
		s.current = cur
	}
	return cur.enterForState(target, event)
}

func (s *compositeInstance) writeTo(b *strings.Builder) {
	b.WriteString(s.typ.name)
	if cur := s.current; cur != nil {
		b.WriteByte('.')
		cur.writeTo(b)
	}
}

func (s *compositeInstance) activePaths(prefix string, paths []string) []string {
	if s.current == nil {
		return append(paths, prefix+s.typ.name)
	}
	return s.current.activePaths(prefix+s.typ.name+".", paths)
}

// parallelInstance holds one active child slot per region plus the joints
// declared on it.
type parallelInstance struct {
	node
	children []instance
	active   []instance // one slot per region, nil when inactive
	joints   []*jointInstance
}

func (s *parallelInstance) enter(event *Event) { s.enterSelf(event) }

func (s *parallelInstance) exit(event *Event) {
	for i, st := range s.active {
		if st != nil {
			s.active[i] = nil
			st.exit(event)
		}
	}
	s.exitSelf(event)
}

// handle tries every active region and every active joint. An explicit
// rejection by any member marks the whole dispatch unhandled; otherwise one
// accepting member is enough. The parallel state's own handlers absorb
// whatever the members did not handle.
func (s *parallelInstance) handle(event *Event) HandleResult {
	result := ResultUnknown
	for _, member := range s.activeMembers() {
		memberResult := member.handle(event)
		if memberResult == ResultUnhandled {
			result = ResultUnhandled
		} else if memberResult == ResultHandled && result == ResultUnknown {
			result = ResultHandled
		}
	}
	if result != ResultHandled {
		result = s.handleSelf(event)
	}
	return result
}

func (s *parallelInstance) initiate(event *Event) {
	for i, st := range s.active {
		if st == nil {
			st = s.children[i]
			st.enter(event)
			s.active[i] = st
		}
		st.initiate(event)
	}
}

func (s *parallelInstance) exitForState(target *StateType, event *Event) bool {
	idx := s.typ.branch(target)
	if idx < 0 {
		return true
	}
	if st := s.active[idx]; st != nil && st.exitForState(target, event) {
		s.active[idx] = nil
		st.exit(event)
	}
	return false
}

func (s *parallelInstance) enterForState(target *StateType, event *Event) bool {
	if target == s.typ {
		return true
	}
	idx := s.typ.branch(target)
	if idx < 0 {
		return false
	}
	st := s.active[idx]
	if st == nil {
		st = s.children[idx]
		st.enter(event)
		s.active[idx] = st
	}
	return st.enterForState(target, event)
}

// activeMembers lists the active regions in declaration order, followed by
// the currently synchronized joints.
func (s *parallelInstance) activeMembers() []instance {
	members := make([]instance, 0, len(s.active)+len(s.joints))
	for _, st := range s.active {
		if st != nil {
			members = append(members, st)
		}
	}
	for _, j := range s.joints {
		if j.isActive() {
			members = append(members, j)
		}
	}
	return members
}

func (s *parallelInstance) writeTo(b *strings.Builder) {
	b.WriteString(s.typ.name)
	open := false
	for _, member := range s.activeMembers() {
		if open {
			b.WriteString(", ")
		} else {
			b.WriteByte('[')
			open = true
		}
		member.writeTo(b)
	}
	if open {
		b.WriteByte(']')
	}
}

func (s *parallelInstance) activePaths(prefix string, paths []string) []string {
	members := s.activeMembers()
	if len(members) == 0 {
		return append(paths, prefix+s.typ.name)
	}
	for _, member := range members {
		paths = member.activePaths(prefix+s.typ.name+".", paths)
	}
	return paths
}

// jointInstance tracks an AND-join: the counter holds the number of guard
// states not currently active, and the joint is active exactly at zero.
// Guard instances hold non-owning links back to their joints; the registry
// remains the only owner of instances.
type jointInstance struct {
	typ            *StateType
	chart          *Chart
	inactiveGuards int
}

func (j *jointInstance) isActive() bool {
	return j.inactiveGuards == 0
}

// enterGuard is called after a guard state ran its entry handlers.
func (j *jointInstance) enterGuard(event *Event) {
	j.inactiveGuards--
	if j.inactiveGuards == 0 {
		j.typ.entry.dispatch(j.chart, event)
	}
}

// exitGuard is called before a guard state runs its exit handlers.
func (j *jointInstance) exitGuard(event *Event) {
	if j.inactiveGuards == 0 {
		j.typ.exit.dispatch(j.chart, event)
	}
	j.inactiveGuards++
}

func (j *jointInstance) enter(event *Event) {
	j.typ.entry.dispatch(j.chart, event)
}

func (j *jointInstance) exit(event *Event) {
	j.typ.exit.dispatch(j.chart, event)
}

func (j *jointInstance) handle(event *Event) HandleResult {
	return j.typ.events.dispatch(j.chart, event)
}

func (j *jointInstance) initiate(*Event) {}

func (j *jointInstance) exitForState(*StateType, *Event) bool { return true }

func (j *jointInstance) enterForState(*StateType, *Event) bool { return true }

func (j *jointInstance) writeTo(b *strings.Builder) {
	b.WriteString(j.typ.name)
}

func (j *jointInstance) activePaths(prefix string, paths []string) []string {
	return append(paths, prefix+j.typ.name)
}

// registry lazily creates and caches exactly one instance per state type for
// one chart. Instances are never discarded before the chart is.
type registry struct {
	chart  *Chart
	states map[*StateType]instance
	joints map[*StateType]*jointInstance
}

func newRegistry(chart *Chart) *registry {
	return &registry{
		chart:  chart,
		states: map[*StateType]instance{},
		joints: map[*StateType]*jointInstance{},
	}
}

// instance returns the runtime instance for a tree state, creating it and
// its subtree on first reference.
func (r *registry) instance(typ *StateType) instance {
	if inst, ok := r.states[typ]; ok {
		return inst
	}
	switch typ.kind {
	case KindComposite:
		inst := &compositeInstance{node: node{typ: typ, chart: r.chart}}
		r.states[typ] = inst
		inst.children = r.instances(typ.children)
		return inst

	case KindParallel:
		inst := &parallelInstance{node: node{typ: typ, chart: r.chart}}
		r.states[typ] = inst
		inst.children = r.instances(typ.children)
		inst.active = make([]instance, len(typ.children))
		for _, jointType := range typ.joints {
			inst.joints = append(inst.joints, r.joint(jointType))
		}
		return inst

	default:
		inst := &simpleInstance{node: node{typ: typ, chart: r.chart}}
		r.states[typ] = inst
		return inst
	}
}

func (r *registry) instances(types []*StateType) []instance {
	children := make([]instance, len(types))
	for i, typ := range types {
		children[i] = r.instance(typ)
	}
	return children
}

// joint returns the joint instance for a joint type, creating it and linking
// it into every guard instance on first reference.
func (r *registry) joint(typ *StateType) *jointInstance {
	if j, ok := r.joints[typ]; ok {
		return j
	}
	j := &jointInstance{
		typ:            typ,
		chart:          r.chart,
		inactiveGuards: len(typ.expandedGuards),
	}
	r.joints[typ] = j
	for _, guardType := range typ.expandedGuards {
		if linker, ok := r.instance(guardType).(interface{ linkJoint(*jointInstance) }); ok {
			linker.linkJoint(j)
		}
	}
	return j
}
