package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"migration-service/internal/migration"
)

const subjectRunCompleted = "migration.run.completed"

// RunCompletedEvent is the payload published after a live run commits, so
// downstream services (search indexing, analytics) know fresh data landed.
type RunCompletedEvent struct {
	RunID       string    `json:"runId"`
	EntityType  string    `json:"entityType"`
	Scope       string    `json:"scope"`
	TargetScope string    `json:"targetScope"`
	RowsSeen    int64     `json:"rowsSeen"`
	Created     int64     `json:"created"`
	Updated     int64     `json:"updated"`
	Skipped     int64     `json:"skipped"`
	Errors      int64     `json:"errors"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Publisher publishes migration events to NATS. A nil Publisher (NATS not
// configured) is valid and publishes nothing; migrations never depend on the
// event bus being up.
type Publisher struct {
	nc  *nats.Conn
	log *logrus.Entry
}

// NewPublisher connects to NATS. Connection failures are returned so the
// caller can degrade gracefully rather than abort.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("migration-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		nc:  nc,
		log: logger.WithField("component", "migration-events"),
	}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}

// RunCompleted publishes a migration.run.completed event. Publish failures
// are logged and swallowed; the run already committed.
func (p *Publisher) RunCompleted(_ context.Context, res *migration.Result) {
	if p == nil || p.nc == nil {
		return
	}
	event := RunCompletedEvent{
		RunID:       res.RunID.String(),
		EntityType:  res.EntityType,
		Scope:       res.Scope,
		TargetScope: res.TargetScope,
		RowsSeen:    res.Counters.Seen,
		Created:     res.Counters.Created,
		Updated:     res.Counters.Updated,
		Skipped:     res.Counters.Skipped,
		Errors:      res.Counters.Errors,
		FinishedAt:  res.FinishedAt,
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).Warn("Failed to encode run-completed event")
		return
	}
	if err := p.nc.Publish(subjectRunCompleted, data); err != nil {
		p.log.WithError(err).Warn("Failed to publish run-completed event")
	}
}
