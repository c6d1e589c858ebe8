package report

import "github.com/wim-c/psc"

// Multi fans every report out to a list of reporters in order.
type Multi []psc.Reporter

func (m Multi) Initiated(r psc.Report) {
	for _, rep := range m {
		rep.Initiated(r)
	}
}

func (m Multi) Terminated(r psc.Report) {
	for _, rep := range m {
		rep.Terminated(r)
	}
}

func (m Multi) EventProcessed(r psc.Report, event psc.Event) {
	for _, rep := range m {
		rep.EventProcessed(r, event)
	}
}

func (m Multi) Transitions(r psc.Report, targets []*psc.StateType) {
	for _, rep := range m {
		rep.Transitions(r, targets)
	}
}

func (m Multi) UnprocessedEvent(r psc.Report, event psc.Event) {
	for _, rep := range m {
		rep.UnprocessedEvent(r, event)
	}
}

func (m Multi) UnprocessedReply(r psc.Report, reply psc.Reply) {
	for _, rep := range m {
		rep.UnprocessedReply(r, reply)
	}
}

func (m Multi) TransitionError(r psc.Report, target *psc.StateType) {
	for _, rep := range m {
		rep.TransitionError(r, target)
	}
}

func (m Multi) UnreachableTarget(r psc.Report, target *psc.StateType) {
	for _, rep := range m {
		rep.UnreachableTarget(r, target)
	}
}

func (m Multi) NotInitiated(r psc.Report, event psc.Event) {
	for _, rep := range m {
		rep.NotInitiated(r, event)
	}
}
