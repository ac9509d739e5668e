package migration

import "migration-service/internal/models"

// Mode selects how a run treats the destination.
type Mode string

const (
	// Live performs writes and commits.
	Live Mode = "LIVE"

	// DryRun performs every computation and decision but discards all
	// writes: the outer transaction is rolled back unconditionally and the
	// identity map is never persisted. Counters still reflect the would-be
	// actions.
	DryRun Mode = "DRY_RUN"

	// ForceOverwrite behaves like Live but rewrites tracked fields on
	// destination rows whose natural key already exists.
	ForceOverwrite Mode = "FORCE_OVERWRITE"
)

// ModeFromFlags maps the CLI --dry-run / --force flags to a mode. Dry run
// wins when both are set; previewing an overwrite is not supported.
func ModeFromFlags(dryRun, force bool) Mode {
	switch {
	case dryRun:
		return DryRun
	case force:
		return ForceOverwrite
	default:
		return Live
	}
}

// RunMode converts a Mode to its persisted audit-record form.
func (m Mode) RunMode() models.RunMode {
	switch m {
	case DryRun:
		return models.RunModeDryRun
	case ForceOverwrite:
		return models.RunModeForceOverwrite
	default:
		return models.RunModeLive
	}
}

// Action is the decision the upsert executor took for one row.
type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionSkipped Action = "SKIPPED"
)
