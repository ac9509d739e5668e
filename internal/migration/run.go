package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"migration-service/internal/identity"
	"migration-service/internal/legacy"
	"migration-service/internal/models"
	"migration-service/internal/transform"
)

// RunRecorder persists the audit record of a finished run. Audit writes
// happen outside the run's own transaction so that dry runs and failed runs
// are recorded too.
type RunRecorder interface {
	Record(ctx context.Context, rec *models.MigrationRunRecord) error
}

// EventPublisher announces completed live runs to the rest of the platform.
type EventPublisher interface {
	RunCompleted(ctx context.Context, res *Result)
}

// Options selects what one run migrates and how.
type Options struct {
	Scope       string
	TargetScope string
	Mode        Mode
	Limit       int64
	ChunkSize   int
}

// Result is everything a run hands back to its caller: counters, the
// finalized identity map, and the terminal status.
type Result struct {
	RunID       uuid.UUID
	EntityType  string
	Scope       string
	TargetScope string
	Mode        Mode
	Status      models.RunStatus
	Counters    Counters
	Map         *identity.Map
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Engine drives migration runs: source reader -> field transformer ->
// identity map -> upsert executor, one entity type per run, one outer
// transaction per run.
type Engine struct {
	reader    *legacy.Reader
	dest      *gorm.DB
	store     identity.Store
	recorder  RunRecorder
	publisher EventPublisher
	log       *logrus.Logger
	chunkSize int
}

// NewEngine creates a migration engine. recorder and publisher may be nil;
// audit records and events are then skipped.
func NewEngine(reader *legacy.Reader, dest *gorm.DB, store identity.Store, recorder RunRecorder, publisher EventPublisher, logger *logrus.Logger, chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	return &Engine{
		reader:    reader,
		dest:      dest,
		store:     store,
		recorder:  recorder,
		publisher: publisher,
		log:       logger,
		chunkSize: chunkSize,
	}
}

// Run executes one full migration pass for def over opts.Scope. Per-row
// transform failures are tolerated and counted; anything else aborts the
// run, rolls back the transaction, and leaves the destination untouched.
func (e *Engine) Run(ctx context.Context, def Definition, opts Options) (*Result, error) {
	if opts.TargetScope == "" {
		opts.TargetScope = opts.Scope
	}
	if opts.Mode == "" {
		opts.Mode = Live
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = e.chunkSize
	}

	res := &Result{
		RunID:       uuid.New(),
		EntityType:  def.EntityType,
		Scope:       opts.Scope,
		TargetScope: opts.TargetScope,
		Mode:        opts.Mode,
		StartedAt:   time.Now().UTC(),
	}
	log := e.log.WithFields(logrus.Fields{
		"run_id": res.RunID,
		"entity": def.EntityType,
		"scope":  opts.Scope,
		"mode":   opts.Mode,
	})

	// Pre-flight: source reachable, scope exists.
	if err := e.reader.Ping(ctx); err != nil {
		return e.fail(ctx, res, log, err)
	}
	if err := e.reader.ScopeExists(ctx, opts.Scope); err != nil {
		return e.fail(ctx, res, log, err)
	}

	// Load this entity's map plus every dependency map.
	ownMap, err := e.store.Load(ctx, def.EntityType, opts.Scope)
	if err != nil {
		return e.fail(ctx, res, log, err)
	}
	res.Map = ownMap

	tc := &TransformContext{
		SourceScope: opts.Scope,
		TargetScope: opts.TargetScope,
		Maps:        map[string]*identity.Map{def.EntityType: ownMap},
	}
	for _, dep := range def.Dependencies {
		depMap, err := e.store.Load(ctx, dep, opts.Scope)
		if err != nil {
			return e.fail(ctx, res, log, err)
		}
		if depMap.Len() == 0 {
			log.WithField("dependency", dep).Warn("Dependency identity map is empty; foreign keys will resolve to null")
		}
		tc.Maps[dep] = depMap
	}

	tx := e.dest.WithContext(ctx).Begin()
	if tx.Error != nil {
		return e.fail(ctx, res, log, fmt.Errorf("failed to begin destination transaction: %w", tx.Error))
	}
	finalized := false
	defer func() {
		if !finalized {
			tx.Rollback()
		}
	}()

	if def.Prepare != nil {
		if err := def.Prepare(tx, tc); err != nil {
			return e.fail(ctx, res, log, fmt.Errorf("prepare %s: %w", def.EntityType, err))
		}
	}

	executor := NewUpsertExecutor(tx)
	query := legacy.Query{
		Table:       def.LegacyTable,
		PrimaryKey:  def.PrimaryKey,
		ScopeColumn: def.ScopeColumn,
		Scope:       opts.Scope,
		Filters:     def.Filters,
		ChunkSize:   chunk,
		Limit:       opts.Limit,
	}

	err = e.reader.Read(ctx, query, func(row transform.SourceRow) error {
		res.Counters.Seen++

		t, terr := def.Transform(row, tc)
		if terr != nil {
			res.Counters.Errors++
			res.Counters.Warnf("row %s: %v", row.String(def.PrimaryKey), terr)
			log.WithError(terr).WithField("source_id", row.String(def.PrimaryKey)).Warn("Row transform failed; row passed over")
			return nil
		}
		if t == nil {
			res.Counters.Skipped++
			return nil
		}
		res.Counters.Warnings = append(res.Counters.Warnings, t.Warnings...)

		ur, uerr := executor.Apply(t, opts.Mode, def.Matchers)
		if uerr != nil {
			return uerr
		}
		res.Counters.Apply(ur.Action)

		if ur.DestinationID != 0 {
			if merr := ownMap.Record(t.SourceID, ur.DestinationID); merr != nil {
				return merr
			}
		}
		return nil
	})
	if err != nil {
		return e.fail(ctx, res, log, err)
	}

	// Finalize: dry runs roll back unconditionally; live runs commit and
	// then persist the identity map.
	if opts.Mode == DryRun {
		tx.Rollback()
		finalized = true
		res.Status = models.RunStatusRolledBack
	} else {
		if err := tx.Commit().Error; err != nil {
			return e.fail(ctx, res, log, fmt.Errorf("commit failed: %w", err))
		}
		finalized = true
		if err := e.store.Save(ctx, ownMap); err != nil {
			// The data committed but the map did not persist. Surface it:
			// dependent runs would silently lose linkage otherwise.
			return e.fail(ctx, res, log, fmt.Errorf("run committed but identity map save failed: %w", err))
		}
		res.Status = models.RunStatusCommitted
	}

	res.FinishedAt = time.Now().UTC()
	e.record(ctx, res, "")

	log.WithFields(logrus.Fields{
		"seen":    res.Counters.Seen,
		"created": res.Counters.Created,
		"updated": res.Counters.Updated,
		"skipped": res.Counters.Skipped,
		"errors":  res.Counters.Errors,
	}).Info("Migration run finished")

	if res.Status == models.RunStatusCommitted && e.publisher != nil {
		e.publisher.RunCompleted(ctx, res)
	}
	return res, nil
}

// RunSequence executes several definitions in order against the same scope,
// stopping at the first failure. Callers pass dependencies before
// dependents; the engine does not reorder.
func (e *Engine) RunSequence(ctx context.Context, defs []Definition, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(defs))
	for _, def := range defs {
		res, err := e.Run(ctx, def, opts)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			return results, fmt.Errorf("migration stopped at %s: %w", def.EntityType, err)
		}
	}
	return results, nil
}

// fail finalizes a failed run: the deferred rollback has or will run, the
// audit record is written, and the error is surfaced verbatim.
func (e *Engine) fail(ctx context.Context, res *Result, log *logrus.Entry, err error) (*Result, error) {
	res.Status = models.RunStatusFailed
	res.FinishedAt = time.Now().UTC()
	e.record(ctx, res, err.Error())

	var conflict *identity.ConflictError
	switch {
	case errors.Is(err, legacy.ErrSourceUnavailable), errors.Is(err, legacy.ErrScopeNotFound):
		log.WithError(err).Error("Pre-flight check failed; run never started")
	case errors.As(err, &conflict):
		log.WithError(err).Error("Identity map conflict; run aborted and rolled back")
	default:
		log.WithError(err).Error("Migration run failed; all writes rolled back")
	}
	return res, err
}

func (e *Engine) record(ctx context.Context, res *Result, errMsg string) {
	if e.recorder == nil {
		return
	}
	finished := res.FinishedAt
	rec := &models.MigrationRunRecord{
		ID:          res.RunID,
		EntityType:  res.EntityType,
		Scope:       res.Scope,
		TargetScope: res.TargetScope,
		Mode:        res.Mode.RunMode(),
		Status:      res.Status,
		RowsSeen:    res.Counters.Seen,
		Created:     res.Counters.Created,
		Updated:     res.Counters.Updated,
		Skipped:     res.Counters.Skipped,
		Errors:      res.Counters.Errors,
		Warnings:    int64(len(res.Counters.Warnings)),
		Error:       errMsg,
		StartedAt:   res.StartedAt,
		FinishedAt:  &finished,
	}
	if err := e.recorder.Record(ctx, rec); err != nil {
		e.log.WithError(err).Warn("Failed to write migration run audit record")
	}
}
