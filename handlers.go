package psc

// Handler is an entry, exit or event callback bound to a state type. The
// chart argument gives access to Transit and Reply; event is the message
// that triggered the invocation and is nil for plain (default) entry and
// exit during initiation and termination.
//
// Handlers run to completion on the caller's goroutine and must not block.
// Returning ErrUnhandled (or any non-nil error) marks the invocation as
// explicitly not handled.
type Handler func(c *Chart, event *Event) error

// ReplyHandler is a chart-level callback consuming a buffered reply.
type ReplyHandler func(c *Chart, reply Reply)

// HandleResult is the aggregate outcome of invoking a handler table.
type HandleResult int

const (
	// ResultUnknown means no handler list was registered for the event.
	ResultUnknown HandleResult = iota
	// ResultUnhandled means at least one invoked handler signaled
	// non-handling.
	ResultUnhandled
	// ResultHandled means every invoked handler succeeded.
	ResultHandled
)

func (r HandleResult) String() string {
	switch r {
	case ResultUnhandled:
		return "unhandled"
	case ResultHandled:
		return "handled"
	default:
		return "unknown"
	}
}

// handlerTable maps an event kind to its ordered handler list. KindDefault
// holds the untyped fallback list.
type handlerTable map[EventKind][]Handler

func (t handlerTable) add(kind EventKind, h Handler) {
	t[kind] = append(t[kind], h)
}

// invoke runs one handler list. The result is handled unless a handler
// explicitly declines.
func invoke(handlers []Handler, c *Chart, event *Event) HandleResult {
	result := ResultHandled
	for _, h := range handlers {
		if err := h(c, event); err != nil {
			result = ResultUnhandled
		}
	}
	return result
}

// dispatch routes one event through the table: the typed list first, then
// the default list if no typed list matched or it returned non-handled.
func (t handlerTable) dispatch(c *Chart, event *Event) HandleResult {
	if len(t) == 0 {
		return ResultUnknown
	}
	result := ResultUnknown
	if event != nil && event.Kind != KindDefault {
		if selected, ok := t[event.Kind]; ok {
			result = invoke(selected, c, event)
		}
	}
	if result != ResultHandled {
		if selected, ok := t[KindDefault]; ok {
			result = invoke(selected, c, event)
		}
	}
	return result
}
