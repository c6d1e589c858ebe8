package psc

import "strings"

// Report carries the context the chart attaches to every reporting hook:
// enough to render a diagnostic line without reaching back into the chart.
type Report struct {
	// ChartID is the unique chart identifier.
	ChartID string
	// Chart is the configured chart name, empty when unnamed.
	Chart string
	// Event describes the event being processed when the hook fired, empty
	// outside of dispatch.
	Event string
	// Configuration is the rendered active configuration, for example
	// Top[Request.OnRequest, Engine.Off]. Empty when not initiated.
	Configuration string
}

// Decorate renders msg with the report context, in the form
// "In <chart>: While processing <event>: <msg> in state <configuration>".
func (r Report) Decorate(msg string) string {
	var b strings.Builder
	if r.Chart != "" {
		b.WriteString("In ")
		b.WriteString(r.Chart)
		b.WriteString(": ")
	}
	if r.Event != "" {
		b.WriteString("While processing ")
		b.WriteString(r.Event)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	if r.Configuration != "" {
		b.WriteString(" in state ")
		b.WriteString(r.Configuration)
	}
	return b.String()
}

// Reporter receives the chart's informational and error events. The engine
// only calls these hooks; how they are surfaced (logs, channels, metrics) is
// the collaborator's business. All hooks run synchronously on the chart's
// goroutine and must not block or call back into the chart.
//
// Adapters live in the report subpackage; the zero NopReporter drops
// everything.
type Reporter interface {
	// Initiated fires after Initiate established the full default
	// configuration.
	Initiated(r Report)
	// Terminated fires after Terminate tore the configuration down.
	Terminated(r Report)
	// EventProcessed fires once an event and all its transition waves have
	// fully settled.
	EventProcessed(r Report, event Event)
	// Transitions fires before a wave of transition targets is applied.
	Transitions(r Report, targets []*StateType)

	// UnprocessedEvent fires when no handler at any active level matched;
	// the event is dropped.
	UnprocessedEvent(r Report, event Event)
	// UnprocessedReply fires when no chart-level handler is registered for
	// a reply's kind; the reply is dropped.
	UnprocessedReply(r Report, reply Reply)
	// TransitionError fires when an entry walk hit a conflicting active
	// branch; the target is skipped for this wave.
	TransitionError(r Report, target *StateType)
	// UnreachableTarget fires when Transit was called with a target not
	// reachable from the top state; the request is discarded.
	UnreachableTarget(r Report, target *StateType)
	// NotInitiated fires when Process was called before Initiate; the
	// event is dropped.
	NotInitiated(r Report, event Event)
}

// NopReporter discards every report. It is the default reporter of a chart.
type NopReporter struct{}

func (NopReporter) Initiated(Report)                     {}
func (NopReporter) Terminated(Report)                    {}
func (NopReporter) EventProcessed(Report, Event)         {}
func (NopReporter) Transitions(Report, []*StateType)     {}
func (NopReporter) UnprocessedEvent(Report, Event)       {}
func (NopReporter) UnprocessedReply(Report, Reply)       {}
func (NopReporter) TransitionError(Report, *StateType)   {}
func (NopReporter) UnreachableTarget(Report, *StateType) {}
func (NopReporter) NotInitiated(Report, Event)           {}
