package psc_test

import (
	"fmt"

	"github.com/wim-c/psc"
)

// recorder collects a global firing sequence from instrumented handlers.
type recorder struct {
	seq []string
}

func (r *recorder) add(entry string) {
	r.seq = append(r.seq, entry)
}

func (r *recorder) reset() {
	r.seq = nil
}

// enter returns a default entry handler recording "<name>.enter".
func (r *recorder) enter(name string) psc.Handler {
	return func(c *psc.Chart, e *psc.Event) error {
		r.add(name + ".enter")
		return nil
	}
}

// exit returns a default exit handler recording "<name>.exit".
func (r *recorder) exit(name string) psc.Handler {
	return func(c *psc.Chart, e *psc.Event) error {
		r.add(name + ".exit")
		return nil
	}
}

// capture is a Reporter keeping every hook invocation for assertions.
type capture struct {
	initiated          int
	terminated         int
	processed          []psc.Event
	waves              [][]*psc.StateType
	unprocessedEvents  []psc.Event
	unprocessedReplies []psc.Reply
	transitionErrors   []*psc.StateType
	unreachable        []*psc.StateType
	notInitiated       []psc.Event
}

func (c *capture) Initiated(psc.Report)  { c.initiated++ }
func (c *capture) Terminated(psc.Report) { c.terminated++ }

func (c *capture) EventProcessed(_ psc.Report, event psc.Event) {
	c.processed = append(c.processed, event)
}

func (c *capture) Transitions(_ psc.Report, targets []*psc.StateType) {
	c.waves = append(c.waves, targets)
}

func (c *capture) UnprocessedEvent(_ psc.Report, event psc.Event) {
	c.unprocessedEvents = append(c.unprocessedEvents, event)
}

func (c *capture) UnprocessedReply(_ psc.Report, reply psc.Reply) {
	c.unprocessedReplies = append(c.unprocessedReplies, reply)
}

func (c *capture) TransitionError(_ psc.Report, target *psc.StateType) {
	c.transitionErrors = append(c.transitionErrors, target)
}

func (c *capture) UnreachableTarget(_ psc.Report, target *psc.StateType) {
	c.unreachable = append(c.unreachable, target)
}

func (c *capture) NotInitiated(_ psc.Report, event psc.Event) {
	c.notInitiated = append(c.notInitiated, event)
}

// Event and reply kinds of the engine request chart fixture.
const (
	evRequestOn  psc.EventKind = "EvRequestOn"
	evRequestOff psc.EventKind = "EvRequestOff"
	evTurnedOn   psc.EventKind = "EvTurnedOn"
	evTurnedOff  psc.EventKind = "EvTurnedOff"

	replyOnRequested  psc.ReplyKind = "ReplyOnRequested"
	replyOffRequested psc.ReplyKind = "ReplyOffRequested"
	replyTurnOn       psc.ReplyKind = "ReplyTurnOn"
	replyTurnOff      psc.ReplyKind = "ReplyTurnOff"
)

// engineStates exposes the node handles of the engine request chart.
type engineStates struct {
	onRequest, offRequest, request     *psc.StateType
	off, on, goingOn, goingOff, engine *psc.StateType
	turnOn, turnOff, top               *psc.StateType
}

// engineDefinition builds the on/off engine request chart with every entry,
// exit and reply instrumented through rec.
func engineDefinition(rec *recorder) (*psc.Definition, *engineStates, error) {
	s := &engineStates{}

	s.onRequest = psc.Simple("OnRequest",
		psc.OnEnter(rec.enter("OnRequest")),
		psc.OnEntry(evRequestOn, func(c *psc.Chart, e *psc.Event) error {
			rec.add("OnRequest.enter by EvRequestOn")
			return nil
		}),
		psc.OnExit(rec.exit("OnRequest")),
		psc.OnEvent(evRequestOff, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.offRequest)
			c.Reply(psc.NewReply(replyOffRequested, nil))
			return nil
		}),
	)
	s.offRequest = psc.Simple("OffRequest",
		psc.OnEnter(rec.enter("OffRequest")),
		psc.OnEntry(evRequestOff, func(c *psc.Chart, e *psc.Event) error {
			rec.add("OffRequest.enter by EvRequestOff")
			return nil
		}),
		psc.OnExit(rec.exit("OffRequest")),
		psc.OnEvent(evRequestOn, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.onRequest)
			c.Reply(psc.NewReply(replyOnRequested, nil))
			return nil
		}),
	)
	s.request = psc.Composite("Request", []*psc.StateType{s.onRequest, s.offRequest},
		psc.OnEnter(rec.enter("Request")),
		psc.OnExit(rec.exit("Request")),
	)

	s.off = psc.Simple("Off",
		psc.OnEnter(rec.enter("Off")),
		psc.OnExit(rec.exit("Off")),
	)
	s.on = psc.Simple("On",
		psc.OnEnter(rec.enter("On")),
		psc.OnExit(rec.exit("On")),
	)
	s.goingOn = psc.Simple("GoingOn",
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			rec.add("GoingOn.enter")
			c.Reply(psc.NewReply(replyTurnOn, nil))
			return nil
		}),
		psc.OnExit(rec.exit("GoingOn")),
		psc.OnEvent(evTurnedOn, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.on)
			return nil
		}),
	)
	s.goingOff = psc.Simple("GoingOff",
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			rec.add("GoingOff.enter")
			c.Reply(psc.NewReply(replyTurnOff, nil))
			return nil
		}),
		psc.OnExit(rec.exit("GoingOff")),
		psc.OnEvent(evTurnedOff, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.off)
			return nil
		}),
	)
	s.engine = psc.Composite("Engine", []*psc.StateType{s.off, s.goingOn, s.goingOff, s.on},
		psc.OnEnter(rec.enter("Engine")),
		psc.OnExit(rec.exit("Engine")),
	)

	s.turnOn = psc.Joint("TurnOn", []*psc.StateType{s.onRequest, s.off},
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			rec.add("TurnOn.enter")
			c.Transit(s.goingOn)
			return nil
		}),
		psc.OnExit(rec.exit("TurnOn")),
	)
	s.turnOff = psc.Joint("TurnOff", []*psc.StateType{s.offRequest, s.on},
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			rec.add("TurnOff.enter")
			c.Transit(s.goingOff)
			return nil
		}),
		psc.OnExit(rec.exit("TurnOff")),
	)

	s.top = psc.Parallel("Top",
		[]*psc.StateType{s.request, s.engine},
		[]*psc.StateType{s.turnOn, s.turnOff},
		psc.OnEnter(rec.enter("Top")),
		psc.OnExit(rec.exit("Top")),
	)

	def, err := psc.NewDefinition(s.top)
	return def, s, err
}

// engineChart wires the engine definition to reply handlers that record
// "reply:<kind>".
func engineChart(rec *recorder, opts ...psc.Option) (*psc.Chart, *engineStates, error) {
	def, s, err := engineDefinition(rec)
	if err != nil {
		return nil, nil, err
	}
	record := func(kind psc.ReplyKind) psc.Option {
		return psc.OnReply(kind, func(c *psc.Chart, r psc.Reply) {
			rec.add(fmt.Sprintf("reply:%s", kind))
		})
	}
	opts = append([]psc.Option{
		psc.WithName("engine"),
		record(replyOnRequested),
		record(replyOffRequested),
		record(replyTurnOn),
		record(replyTurnOff),
	}, opts...)
	return psc.NewChart(def, opts...), s, nil
}
