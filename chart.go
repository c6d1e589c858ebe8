package psc

import (
	"strings"

	"github.com/google/uuid"
)

// Chart interprets a Definition. It owns the instance registry, the external
// event queue and the transit/reply queues, and drives initiation,
// termination and event dispatch.
//
// A chart is single-threaded and non-preemptive: handlers run to completion
// on the caller's goroutine. The only concurrency-like hazard, a handler
// calling Process while a dispatch is in flight, is resolved by FIFO
// queuing. Callers sharing one chart across goroutines must serialize
// access externally.
type Chart struct {
	def      *Definition
	id       string
	name     string
	reporter Reporter

	replyHandlers map[ReplyKind][]ReplyHandler

	reg  *registry
	root instance

	current        *Event
	dispatching    bool
	eventQueue     []Event
	transitQueue   []*StateType
	replyQueue     []Reply
	replyBuffering bool
}

// Option configures a Chart.
type Option func(*Chart)

// WithID overrides the generated chart ID.
func WithID(id string) Option {
	return func(c *Chart) { c.id = id }
}

// WithName sets the chart name used in report context.
func WithName(name string) Option {
	return func(c *Chart) { c.name = name }
}

// WithReporter configures the chart's reporting collaborator.
func WithReporter(r Reporter) Option {
	return func(c *Chart) { c.reporter = r }
}

// OnReply registers a chart-level reply handler for the given reply kind.
// Handlers for one kind run in registration order.
func OnReply(kind ReplyKind, h ReplyHandler) Option {
	return func(c *Chart) {
		c.replyHandlers[kind] = append(c.replyHandlers[kind], h)
	}
}

// NewChart creates a chart for the given definition. The instance registry
// is created once here and survives Terminate, so instance identity is
// stable for the chart's whole lifetime.
func NewChart(def *Definition, opts ...Option) *Chart {
	c := &Chart{
		def:           def,
		id:            uuid.NewString(),
		reporter:      NopReporter{},
		replyHandlers: map[ReplyKind][]ReplyHandler{},
	}
	c.reg = newRegistry(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the chart's unique identifier.
func (c *Chart) ID() string { return c.id }

// Name returns the configured chart name.
func (c *Chart) Name() string { return c.name }

// Definition returns the interpreted definition.
func (c *Chart) Definition() *Definition { return c.def }

// Initiated reports whether the chart currently holds an active
// configuration.
func (c *Chart) Initiated() bool { return c.root != nil }

// Active renders the active configuration, for example
// Top[Request.OnRequest, Engine.Off]. Empty when not initiated.
func (c *Chart) Active() string {
	if c.root == nil {
		return ""
	}
	var b strings.Builder
	c.root.writeTo(&b)
	return b.String()
}

// ActivePaths returns the dotted active leaf chains, one per composite
// chain, parallel region and synchronized joint. Nil when not initiated.
func (c *Chart) ActivePaths() []string {
	if c.root == nil {
		return nil
	}
	return c.root.activePaths("", nil)
}

// Initiate enters the top state and establishes its default active
// configuration recursively: a composite picks its first declared child, a
// parallel activates every region. Transitions requested by entry handlers
// along the way are processed before Initiate returns. Initiate on an
// already-initiated chart only re-establishes missing defaults.
func (c *Chart) Initiate() {
	c.dispatching = true
	if c.root == nil {
		c.root = c.reg.instance(c.def.top)
		c.root.enter(nil)
	}
	c.root.initiate(nil)
	for len(c.transitQueue) > 0 {
		c.handleTransitions(nil)
	}
	c.dispatching = false

	c.reporter.Initiated(c.report())
	c.drain()
}

// Terminate exits the full active configuration from the root. The instance
// registry is retained: a later Initiate reproduces the default
// configuration with the same instances.
func (c *Chart) Terminate() {
	if root := c.root; root != nil {
		c.dispatching = true
		root.exit(nil)
		c.root = nil
		c.dispatching = false
	}
	c.reporter.Terminated(c.report())
	c.drain()
}

// Process dispatches one external event. When called from inside a handler
// the event is queued and processed only after the in-flight event has fully
// settled, preserving submission order.
func (c *Chart) Process(event Event) {
	if c.dispatching {
		c.eventQueue = append(c.eventQueue, event)
		return
	}
	c.dispatchEvent(event)
	c.drain()
}

// Transit requests a transition to target. The request is only enqueued
// here; it is applied in waves after the current dispatch completes. A
// target not reachable from the top state is discarded and reported.
//
// A conflicting pair of simultaneous requests surfaces later as a
// transition error during the entry phase: the offending target is skipped,
// already-entered siblings stay entered, and the chart continues. Rollback
// is deliberately not attempted.
func (c *Chart) Transit(target *StateType) {
	if target != nil && c.def.Contains(target) {
		c.transitQueue = append(c.transitQueue, target)
		return
	}
	c.reporter.UnreachableTarget(c.report(), target)
}

// Reply emits a reply. While an event is being handled the reply is
// buffered and delivered after all exits and before any entries of the
// resulting transition wave; outside of that window it is delivered
// immediately.
func (c *Chart) Reply(reply Reply) {
	if c.replyBuffering {
		c.replyQueue = append(c.replyQueue, reply)
		return
	}
	c.dispatchReply(reply)
}

func (c *Chart) dispatchReply(reply Reply) {
	handlers, ok := c.replyHandlers[reply.Kind]
	if !ok {
		c.reporter.UnprocessedReply(c.report(), reply)
		return
	}
	for _, h := range handlers {
		h(c, reply)
	}
}

// drain processes queued external events one at a time, each settling fully
// before the next starts.
func (c *Chart) drain() {
	for len(c.eventQueue) > 0 {
		event := c.eventQueue[0]
		c.eventQueue = c.eventQueue[1:]
		c.dispatchEvent(event)
	}
}

func (c *Chart) dispatchEvent(event Event) {
	if c.root == nil {
		c.reporter.NotInitiated(c.report(), event)
		return
	}

	// Mark the dispatch in flight so that recursive Process calls queue.
	c.current = &event
	c.dispatching = true

	// Buffer replies until all exit handlers of the first wave have run.
	c.replyBuffering = true
	c.replyQueue = nil

	if c.root.handle(&event) != ResultHandled {
		c.reporter.UnprocessedEvent(c.report(), event)
	}

	// From here on replies are delivered immediately.
	c.replyBuffering = false
	replies := c.replyQueue
	c.replyQueue = nil

	// First wave delivers the buffered replies between exits and entries.
	c.handleTransitions(replies)

	// Further waves fed by exit/entry/reply handlers have nothing buffered.
	for len(c.transitQueue) > 0 {
		c.handleTransitions(nil)
	}

	c.current = nil
	c.dispatching = false

	c.reporter.EventProcessed(c.report(), event)
}

// handleTransitions applies one wave: the targets queued so far are exited,
// buffered replies flushed, and the same targets entered. Targets queued
// while the wave runs wait for the next wave.
func (c *Chart) handleTransitions(replies []Reply) {
	root := c.root
	event := c.current

	n := len(c.transitQueue)
	if n > 0 {
		targets := make([]*StateType, n)
		copy(targets, c.transitQueue)
		c.reporter.Transitions(c.report(), targets)
	}

	// Exit phase: walk each target from the root, exiting active branches
	// off its path. A target unknown to the root means the root itself is
	// exited; nothing below survives, so remaining walks are moot.
	state := root
	for i := 0; i < n; i++ {
		if state.exitForState(c.transitQueue[i], event) {
			state.exit(event)
			state = nil
			break
		}
	}

	// Reply flush: reply handlers observe the post-exit, pre-entry
	// configuration.
	for _, reply := range replies {
		c.dispatchReply(reply)
	}

	// Re-enter the root if the exit phase tore everything down.
	if state == nil {
		state = root
		state.enter(event)
	}

	// Entry phase: walk each target from the root along its path.
	for i := 0; i < n; i++ {
		if !state.enterForState(c.transitQueue[i], event) {
			c.reporter.TransitionError(c.report(), c.transitQueue[i])
		}
	}

	c.transitQueue = c.transitQueue[n:]
}

// report captures the current chart context for a reporting hook.
func (c *Chart) report() Report {
	r := Report{
		ChartID:       c.id,
		Chart:         c.name,
		Configuration: c.Active(),
	}
	if c.current != nil {
		r.Event = c.current.String()
	}
	return r
}
