// Package report provides reporting collaborators for psc charts: slog
// logging, channel fan-out, Prometheus metrics, and a multi-reporter that
// combines them.
package report

import (
	"log/slog"

	"github.com/wim-c/psc"
)

// SlogReporter renders every chart report through a slog.Logger.
// Informational hooks log at Info, error hooks at Error.
type SlogReporter struct {
	log *slog.Logger
}

// NewSlogReporter creates a reporter on the given logger. A nil logger uses
// slog.Default.
func NewSlogReporter(log *slog.Logger) *SlogReporter {
	if log == nil {
		log = slog.Default()
	}
	return &SlogReporter{log: log}
}

func (s *SlogReporter) info(r psc.Report, msg string) {
	s.log.Info(r.Decorate(msg), "chart", r.ChartID)
}

func (s *SlogReporter) error(r psc.Report, msg string) {
	s.log.Error(r.Decorate(msg), "chart", r.ChartID)
}

func (s *SlogReporter) Initiated(r psc.Report) {
	s.info(r, "State chart initiated")
}

func (s *SlogReporter) Terminated(r psc.Report) {
	s.info(r, "State chart terminated")
}

func (s *SlogReporter) EventProcessed(r psc.Report, event psc.Event) {
	s.info(r, "Processed "+event.String())
}

func (s *SlogReporter) Transitions(r psc.Report, targets []*psc.StateType) {
	s.info(r, "transition to "+targetList(targets))
}

func (s *SlogReporter) UnprocessedEvent(r psc.Report, event psc.Event) {
	s.error(r, "Unprocessed event")
}

func (s *SlogReporter) UnprocessedReply(r psc.Report, reply psc.Reply) {
	s.error(r, "Unprocessed "+reply.String())
}

func (s *SlogReporter) TransitionError(r psc.Report, target *psc.StateType) {
	s.error(r, "Transition error for "+target.Name())
}

func (s *SlogReporter) UnreachableTarget(r psc.Report, target *psc.StateType) {
	name := "<nil>"
	if target != nil {
		name = target.Name()
	}
	s.error(r, "Unreachable transition target "+name)
}

func (s *SlogReporter) NotInitiated(r psc.Report, event psc.Event) {
	s.error(r, "State chart not initiated")
}

func targetList(targets []*psc.StateType) string {
	out := "["
	for i, t := range targets {
		if i > 0 {
			out += ", "
		}
		out += t.Name()
	}
	return out + "]"
}
