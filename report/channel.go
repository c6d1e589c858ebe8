package report

import "github.com/wim-c/psc"

// Severity classifies a forwarded record.
type Severity int

const (
	Info Severity = iota
	Error
)

// Record is one reporting hook invocation, flattened for transport.
type Record struct {
	Severity Severity
	Hook     string
	Report   psc.Report
	Message  string
}

// ChannelReporter forwards records to a channel. Publishing never blocks:
// when the channel is full the record is dropped, which keeps slow consumers
// from stalling the chart.
type ChannelReporter struct {
	ch chan<- Record
}

// NewChannelReporter creates a reporter on the given output channel.
func NewChannelReporter(ch chan<- Record) *ChannelReporter {
	return &ChannelReporter{ch: ch}
}

func (c *ChannelReporter) send(severity Severity, hook string, r psc.Report, msg string) {
	select {
	case c.ch <- Record{Severity: severity, Hook: hook, Report: r, Message: r.Decorate(msg)}:
	default:
	}
}

func (c *ChannelReporter) Initiated(r psc.Report) {
	c.send(Info, "initiated", r, "State chart initiated")
}

func (c *ChannelReporter) Terminated(r psc.Report) {
	c.send(Info, "terminated", r, "State chart terminated")
}

func (c *ChannelReporter) EventProcessed(r psc.Report, event psc.Event) {
	c.send(Info, "event_processed", r, "Processed "+event.String())
}

func (c *ChannelReporter) Transitions(r psc.Report, targets []*psc.StateType) {
	c.send(Info, "transitions", r, "transition to "+targetList(targets))
}

func (c *ChannelReporter) UnprocessedEvent(r psc.Report, event psc.Event) {
	c.send(Error, "unprocessed_event", r, "Unprocessed event")
}

func (c *ChannelReporter) UnprocessedReply(r psc.Report, reply psc.Reply) {
	c.send(Error, "unprocessed_reply", r, "Unprocessed "+reply.String())
}

func (c *ChannelReporter) TransitionError(r psc.Report, target *psc.StateType) {
	c.send(Error, "transition_error", r, "Transition error for "+target.Name())
}

func (c *ChannelReporter) UnreachableTarget(r psc.Report, target *psc.StateType) {
	name := "<nil>"
	if target != nil {
		name = target.Name()
	}
	c.send(Error, "unreachable_target", r, "Unreachable transition target "+name)
}

func (c *ChannelReporter) NotInitiated(r psc.Report, event psc.Event) {
	c.send(Error, "not_initiated", r, "State chart not initiated")
}
