// Command demo runs the engine request chart with the full adapter set
// wired: slog reporting, a channel reporter feeding a consumer loop,
// Prometheus metrics, snapshot persistence and a DOT dump of the chart
// shape.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wim-c/psc"
	"github.com/wim-c/psc/graph"
	"github.com/wim-c/psc/report"
	"github.com/wim-c/psc/snapshot"
)

const (
	EvRequestOn  psc.EventKind = "EvRequestOn"
	EvRequestOff psc.EventKind = "EvRequestOff"
	EvTurnedOn   psc.EventKind = "EvTurnedOn"
	EvTurnedOff  psc.EventKind = "EvTurnedOff"

	ReplyOnRequested  psc.ReplyKind = "ReplyOnRequested"
	ReplyOffRequested psc.ReplyKind = "ReplyOffRequested"
	ReplyTurnOn       psc.ReplyKind = "ReplyTurnOn"
	ReplyTurnOff      psc.ReplyKind = "ReplyTurnOff"
)

func engineDefinition() (*psc.Definition, error) {
	var offRequest, goingOn, goingOff, on, off *psc.StateType

	onRequest := psc.Simple("OnRequest",
		psc.OnEvent(EvRequestOff, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(offRequest)
			c.Reply(psc.NewReply(ReplyOffRequested, nil))
			return nil
		}),
	)
	offRequest = psc.Simple("OffRequest",
		psc.OnEvent(EvRequestOn, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(onRequest)
			c.Reply(psc.NewReply(ReplyOnRequested, nil))
			return nil
		}),
	)
	request := psc.Composite("Request", []*psc.StateType{onRequest, offRequest})

	off = psc.Simple("Off")
	on = psc.Simple("On")
	goingOn = psc.Simple("GoingOn",
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			c.Reply(psc.NewReply(ReplyTurnOn, nil))
			return nil
		}),
		psc.OnEvent(EvTurnedOn, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(on)
			return nil
		}),
	)
	goingOff = psc.Simple("GoingOff",
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			c.Reply(psc.NewReply(ReplyTurnOff, nil))
			return nil
		}),
		psc.OnEvent(EvTurnedOff, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(off)
			return nil
		}),
	)
	engine := psc.Composite("Engine", []*psc.StateType{off, goingOn, goingOff, on})

	turnOn := psc.Joint("TurnOn", []*psc.StateType{onRequest, off},
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			c.Transit(goingOn)
			return nil
		}),
	)
	turnOff := psc.Joint("TurnOff", []*psc.StateType{offRequest, on},
		psc.OnEnter(func(c *psc.Chart, e *psc.Event) error {
			c.Transit(goingOff)
			return nil
		}),
	)

	top := psc.Parallel("Top",
		[]*psc.StateType{request, engine},
		[]*psc.StateType{turnOn, turnOff},
	)
	return psc.NewDefinition(top)
}

func main() {
	def, err := engineDefinition()
	if err != nil {
		fmt.Fprintln(os.Stderr, "definition:", err)
		os.Exit(1)
	}

	metrics := report.NewMetricsReporter("engine-demo")
	if err := metrics.Register(prometheus.NewRegistry()); err != nil {
		fmt.Fprintln(os.Stderr, "metrics:", err)
		os.Exit(1)
	}

	records := make(chan report.Record, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for rec := range records {
			if rec.Severity == report.Error {
				fmt.Println("consumer saw error:", rec.Message)
			}
		}
	}()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reporter := report.Multi{
		report.NewSlogReporter(logger),
		report.NewChannelReporter(records),
		metrics,
	}

	chart := psc.NewChart(def,
		psc.WithID("engine-demo"),
		psc.WithName("engine"),
		psc.WithReporter(reporter),
		psc.OnReply(ReplyOnRequested, func(c *psc.Chart, r psc.Reply) {}),
		psc.OnReply(ReplyOffRequested, func(c *psc.Chart, r psc.Reply) {}),
		psc.OnReply(ReplyTurnOn, func(c *psc.Chart, r psc.Reply) {
			logger.Info("driver: start the engine")
		}),
		psc.OnReply(ReplyTurnOff, func(c *psc.Chart, r psc.Reply) {
			logger.Info("driver: stop the engine")
		}),
	)

	fmt.Print(graph.DOT(def, nil))

	chart.Initiate()
	for _, event := range []psc.Event{
		psc.NewEvent(EvTurnedOn, nil),
		psc.NewEvent(EvRequestOff, nil),
		psc.NewEvent(EvTurnedOff, nil),
	} {
		chart.Process(event)
	}

	persister, err := snapshot.NewJSONPersister(os.TempDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, "persister:", err)
		os.Exit(1)
	}
	if err := persister.Save(snapshot.Take(chart)); err != nil {
		fmt.Fprintln(os.Stderr, "save:", err)
		os.Exit(1)
	}

	chart.Terminate()
	close(records)
	<-done
}
