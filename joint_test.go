package psc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wim-c/psc"
)

const (
	evToA1 psc.EventKind = "EvToA1"
	evToB1 psc.EventKind = "EvToB1"
	evToA2 psc.EventKind = "EvToA2"
	evToB2 psc.EventKind = "EvToB2"
)

// syncStates is a two-region parallel chart used by the joint tests. Each
// region toggles between an A and a B leaf; joints are declared per test.
type syncStates struct {
	a1, b1, r1 *psc.StateType
	a2, b2, r2 *psc.StateType
}

func newSyncStates(rec *recorder) *syncStates {
	s := &syncStates{}

	s.a1 = psc.Simple("A1",
		psc.OnEvent(evToB1, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.b1)
			return nil
		}),
	)
	s.b1 = psc.Simple("B1",
		psc.OnEnter(rec.enter("B1")),
		psc.OnExit(rec.exit("B1")),
		psc.OnEvent(evToA1, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.a1)
			return nil
		}),
	)
	s.r1 = psc.Composite("R1", []*psc.StateType{s.a1, s.b1})

	s.a2 = psc.Simple("A2",
		psc.OnEvent(evToB2, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.b2)
			return nil
		}),
	)
	s.b2 = psc.Simple("B2",
		psc.OnEnter(rec.enter("B2")),
		psc.OnExit(rec.exit("B2")),
		psc.OnEvent(evToA2, func(c *psc.Chart, e *psc.Event) error {
			c.Transit(s.a2)
			return nil
		}),
	)
	s.r2 = psc.Composite("R2", []*psc.StateType{s.a2, s.b2})

	return s
}

func (s *syncStates) chart(t *testing.T, joints []*psc.StateType, opts ...psc.Option) *psc.Chart {
	t.Helper()
	top := psc.Parallel("P", []*psc.StateType{s.r1, s.r2}, joints)
	def, err := psc.NewDefinition(top)
	require.NoError(t, err)
	return psc.NewChart(def, opts...)
}

func TestJointFiresOnLastGuard(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	joint := psc.Joint("Both", []*psc.StateType{s.b1, s.b2},
		psc.OnEnter(rec.enter("Both")),
		psc.OnExit(rec.exit("Both")),
	)
	chart := s.chart(t, []*psc.StateType{joint})
	chart.Initiate()

	// One of two guards active: the joint stays silent.
	chart.Process(psc.NewEvent(evToB1, nil))
	assert.Equal(t, []string{"B1.enter"}, rec.seq)

	// The last guard entering fires the joint after its own entry handlers.
	rec.reset()
	chart.Process(psc.NewEvent(evToB2, nil))
	assert.Equal(t, []string{"B2.enter", "Both.enter"}, rec.seq)
	assert.Equal(t, "P[R1.B1, R2.B2, Both]", chart.Active())
}

func TestJointExitsBeforeGuardExit(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	joint := psc.Joint("Both", []*psc.StateType{s.b1, s.b2},
		psc.OnEnter(rec.enter("Both")),
		psc.OnExit(rec.exit("Both")),
	)
	chart := s.chart(t, []*psc.StateType{joint})
	chart.Initiate()
	chart.Process(psc.NewEvent(evToB1, nil))
	chart.Process(psc.NewEvent(evToB2, nil))
	rec.reset()

	// The first guard leaving deactivates the joint while the synchronized
	// configuration still holds, so the joint exits first.
	chart.Process(psc.NewEvent(evToA1, nil))
	assert.Equal(t, []string{"Both.exit", "B1.exit"}, rec.seq)
	assert.Equal(t, "P[R1.A1, R2.B2]", chart.Active())
}

func TestJointRefiresOverRepeatedCycles(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	joint := psc.Joint("Both", []*psc.StateType{s.b1, s.b2},
		psc.OnEnter(rec.enter("Both")),
		psc.OnExit(rec.exit("Both")),
	)
	chart := s.chart(t, []*psc.StateType{joint})
	chart.Initiate()
	chart.Process(psc.NewEvent(evToB2, nil))

	for i := 0; i < 3; i++ {
		rec.reset()
		chart.Process(psc.NewEvent(evToB1, nil))
		assert.Equal(t, []string{"B1.enter", "Both.enter"}, rec.seq, "cycle %d", i)

		rec.reset()
		chart.Process(psc.NewEvent(evToA1, nil))
		assert.Equal(t, []string{"Both.exit", "B1.exit"}, rec.seq, "cycle %d", i)
	}
}

func TestJointGuardedByJoint(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	inner := psc.Joint("Inner", []*psc.StateType{s.b1, s.b2},
		psc.OnEnter(rec.enter("Inner")),
		psc.OnExit(rec.exit("Inner")),
	)
	// A joint guarded by a joint watches the inner joint's guard set.
	outer := psc.Joint("Outer", []*psc.StateType{inner},
		psc.OnEnter(rec.enter("Outer")),
		psc.OnExit(rec.exit("Outer")),
	)
	chart := s.chart(t, []*psc.StateType{inner, outer})
	chart.Initiate()
	chart.Process(psc.NewEvent(evToB1, nil))
	rec.reset()

	chart.Process(psc.NewEvent(evToB2, nil))
	assert.Equal(t, []string{"B2.enter", "Inner.enter", "Outer.enter"}, rec.seq)

	rec.reset()
	chart.Process(psc.NewEvent(evToA2, nil))
	assert.Equal(t, []string{"Inner.exit", "Outer.exit", "B2.exit"}, rec.seq)
}

func TestJointCompositeGuard(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	// A composite guard counts as active while the composite itself is
	// active, whichever of its children holds.
	joint := psc.Joint("R1Up", []*psc.StateType{s.r1},
		psc.OnEnter(rec.enter("R1Up")),
		psc.OnExit(rec.exit("R1Up")),
	)
	chart := s.chart(t, []*psc.StateType{joint})

	chart.Initiate()
	assert.Contains(t, rec.seq, "R1Up.enter")

	// Moving within the region does not touch the joint.
	rec.reset()
	chart.Process(psc.NewEvent(evToB1, nil))
	assert.Equal(t, []string{"B1.enter"}, rec.seq)

	rec.reset()
	chart.Terminate()
	assert.Contains(t, rec.seq, "R1Up.exit")
}

func TestActiveJointHandlesEvents(t *testing.T) {
	rec := &recorder{}
	s := newSyncStates(rec)

	joint := psc.Joint("Both", []*psc.StateType{s.b1, s.b2},
		psc.OnEvent(evGo, func(c *psc.Chart, e *psc.Event) error {
			rec.add("Both.event")
			return nil
		}),
	)
	cap := &capture{}
	chart := s.chart(t, []*psc.StateType{joint}, psc.WithReporter(cap))
	chart.Initiate()

	// While the joint is inactive nobody handles the event.
	chart.Process(psc.NewEvent(evGo, nil))
	assert.Empty(t, rec.seq)
	assert.Len(t, cap.unprocessedEvents, 1)

	chart.Process(psc.NewEvent(evToB1, nil))
	chart.Process(psc.NewEvent(evToB2, nil))
	rec.reset()

	// The synchronized joint takes part in dispatch alongside the regions.
	chart.Process(psc.NewEvent(evGo, nil))
	assert.Equal(t, []string{"Both.event"}, rec.seq)
	assert.Len(t, cap.unprocessedEvents, 1)
}
