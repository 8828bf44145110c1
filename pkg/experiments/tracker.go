package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RunStatus is the terminal state of a run
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one tracked execution
type Run struct {
	ID        string
	Name      string
	Status    RunStatus
	StartedAt time.Time
	EndedAt   *time.Time
}

// Param is a run-scoped configuration value
type Param struct {
	RunID string
	Key   string
	Value string
}

// Metric is a step-indexed measurement
type Metric struct {
	RunID    string
	Key      string
	Value    float64
	Step     int
	LoggedAt time.Time
}

// Artifact is a reference to an output produced by a run
type Artifact struct {
	RunID string
	Name  string
	URI   string
}

// Store persists runs and their records
type Store interface {
	CreateRun(ctx context.Context, run Run) error
	FinishRun(ctx context.Context, runID string, status RunStatus, endedAt time.Time) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	SaveParam(ctx context.Context, param Param) error
	SaveMetric(ctx context.Context, metric Metric) error
	SaveArtifact(ctx context.Context, artifact Artifact) error
	ListMetrics(ctx context.Context, runID, key string) ([]Metric, error)
	Close() error
}

// Tracker starts runs and hands out run-scoped recorders
type Tracker struct {
	store  Store
	logger zerolog.Logger
}

// TrackerOption configures a Tracker
type TrackerOption func(*Tracker)

// WithLogger attaches a logger to the tracker
func WithLogger(logger zerolog.Logger) TrackerOption {
	return func(t *Tracker) { t.logger = logger }
}

// NewTracker creates a tracker on top of the given store
func NewTracker(store Store, opts ...TrackerOption) (*Tracker, error) {
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}

	t := &Tracker{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// StartRun creates a new run with a generated ID
func (t *Tracker) StartRun(ctx context.Context, name string) (*ActiveRun, error) {
	if name == "" {
		return nil, fmt.Errorf("run name must not be empty")
	}

	run := Run{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := t.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	t.logger.Info().Str("run_id", run.ID).Str("name", name).Msg("run started")
	return &ActiveRun{run: run, store: t.store, logger: t.logger}, nil
}

// GetRun fetches a run by ID
func (t *Tracker) GetRun(ctx context.Context, runID string) (*Run, error) {
	return t.store.GetRun(ctx, runID)
}

// Metrics returns the recorded series for one metric key, ordered by step
func (t *Tracker) Metrics(ctx context.Context, runID, key string) ([]Metric, error) {
	return t.store.ListMetrics(ctx, runID, key)
}

// Close releases the underlying store
func (t *Tracker) Close() error {
	return t.store.Close()
}

// ActiveRun records against a single started run
type ActiveRun struct {
	run    Run
	store  Store
	logger zerolog.Logger
}

// ID returns the generated run ID
func (r *ActiveRun) ID() string {
	return r.run.ID
}

// LogParam records a configuration value for the run
func (r *ActiveRun) LogParam(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("param key must not be empty")
	}
	return r.store.SaveParam(ctx, Param{RunID: r.run.ID, Key: key, Value: value})
}

// LogMetric records a measurement at the given step
func (r *ActiveRun) LogMetric(ctx context.Context, key string, value float64, step int) error {
	if key == "" {
		return fmt.Errorf("metric key must not be empty")
	}
	if step < 0 {
		return fmt.Errorf("metric step must not be negative")
	}
	return r.store.SaveMetric(ctx, Metric{
		RunID:    r.run.ID,
		Key:      key,
		Value:    value,
		Step:     step,
		LoggedAt: time.Now().UTC(),
	})
}

// LogArtifact records a reference to a produced output
func (r *ActiveRun) LogArtifact(ctx context.Context, name, uri string) error {
	if name == "" || uri == "" {
		return fmt.Errorf("artifact name and URI must not be empty")
	}
	return r.store.SaveArtifact(ctx, Artifact{RunID: r.run.ID, Name: name, URI: uri})
}

// End marks the run finished with the given status
func (r *ActiveRun) End(ctx context.Context, status RunStatus) error {
	if status != StatusCompleted && status != StatusFailed {
		return fmt.Errorf("invalid terminal status %q", status)
	}

	if err := r.store.FinishRun(ctx, r.run.ID, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}

	r.logger.Info().Str("run_id", r.run.ID).Str("status", string(status)).Msg("run ended")
	return nil
}
