// Package psc is a hierarchical/orthogonal state machine (statechart)
// interpreter. A chart is declared as a tree of state types - simple states,
// composite states with exclusive children, parallel states with concurrent
// regions - plus joint states that synchronize on a set of guard states.
//
// The declared tree is validated and indexed once into a Definition, and a
// Chart interprets it: external events are dispatched into the currently
// active configuration innermost-first, handlers request transitions and emit
// replies, and the transition protocol applies them in waves with a strict
// exit / reply-flush / entry ordering.
//
// The engine is single-threaded and non-preemptive. Handlers run to
// completion and must not block; re-entrant Process calls made from inside a
// handler are queued FIFO and drained only after the in-flight event has
// fully settled. A chart shared across goroutines must be serialized by the
// caller.
//
// Runtime faults (unprocessed events, conflicting transitions, and so on)
// never abort the engine. They are forwarded to a Reporter; adapters for
// slog, channels and Prometheus live in the report subpackage.
package psc
