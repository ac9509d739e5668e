package migration

import "fmt"

// Counters accumulates per-row outcomes for exactly one run. Each run owns
// its own Counters value; nothing is shared across invocations.
type Counters struct {
	Seen     int64
	Created  int64
	Updated  int64
	Skipped  int64
	Errors   int64
	Warnings []string
}

// Apply bumps the counter for one upsert action.
func (c *Counters) Apply(action Action) {
	switch action {
	case ActionCreated:
		c.Created++
	case ActionUpdated:
		c.Updated++
	case ActionSkipped:
		c.Skipped++
	}
}

// Warnf records a human-readable warning without failing the row.
func (c *Counters) Warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
