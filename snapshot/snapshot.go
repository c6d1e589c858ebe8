// Package snapshot captures a chart's active configuration for inspection
// and persistence. A snapshot records which states are active, not handler
// state: restoring one means replaying the events that produced it, so the
// persisters here are an audit/ops facility, not a resume mechanism.
package snapshot

import (
	"time"

	"github.com/wim-c/psc"
)

// Snapshot is the serializable record of a chart's active configuration.
type Snapshot struct {
	ChartID       string    `json:"chartID" yaml:"chartID"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty"`
	Configuration string    `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Active        []string  `json:"active,omitempty" yaml:"active,omitempty"`
	Timestamp     time.Time `json:"timestamp" yaml:"timestamp"`
}

// Take captures the chart's current configuration. Active is empty for a
// chart that is not initiated.
func Take(c *psc.Chart) Snapshot {
	return Snapshot{
		ChartID:       c.ID(),
		Name:          c.Name(),
		Configuration: c.Active(),
		Active:        c.ActivePaths(),
		Timestamp:     time.Now(),
	}
}
