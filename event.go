package psc

// EventKind identifies an event type. Handler tables are keyed by kind, so
// two events with the same kind are routed identically regardless of payload.
type EventKind string

// ReplyKind identifies a reply type for chart-level reply handler lookup.
type ReplyKind string

// KindDefault is the reserved key for default (untyped) handlers. A default
// entry/exit/event handler list runs when no typed list matched the current
// event, or when the typed list returned a non-handled result.
const KindDefault EventKind = ""

// Event is the sole input to dispatch. Events are immutable value types;
// Data holds an optional payload and is never inspected by the engine.
type Event struct {
	Kind EventKind
	Data any
}

// NewEvent returns an Event by value.
func NewEvent(kind EventKind, data any) Event {
	return Event{Kind: kind, Data: data}
}

func (e Event) String() string {
	return "event " + string(e.Kind)
}

// Reply is a typed output emitted by a handler during dispatch. Replies
// emitted while an event is being handled are buffered and delivered between
// the exit and entry phases of the resulting transition wave.
type Reply struct {
	Kind ReplyKind
	Data any
}

// NewReply returns a Reply by value.
func NewReply(kind ReplyKind, data any) Reply {
	return Reply{Kind: kind, Data: data}
}

func (r Reply) String() string {
	return "reply " + string(r.Kind)
}
