// Package engine is the write surface of the workout log: it validates
// client submitted state, hands it to the stores, retries transient store
// failures and invalidates read projections once a write lands.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/telemetry/metrics"
	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
	"github.com/nicklany01/workout-scheduler/internal/workouts/catalogue"
	"github.com/nicklany01/workout-scheduler/internal/workouts/logs"
	"github.com/nicklany01/workout-scheduler/internal/workouts/progress"
	"github.com/nicklany01/workout-scheduler/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=engine_test

type catalogueStore interface {
	Reconcile(ctx context.Context, userID workouts.UserID, desired map[string][]workouts.Muscle) (catalogue.ReconcileResult, error)
}

type logStore interface {
	ReplaceRange(
		ctx context.Context,
		userID workouts.UserID,
		start, end workouts.CalendarDate,
		newLogs map[workouts.CalendarDate][]workouts.ExerciseLog,
	) error
	UpdateEntries(ctx context.Context, userID workouts.UserID, date workouts.CalendarDate, entries []workouts.ExerciseLog) (logs.UpdateResult, error)
}

type projectionInvalidator interface {
	Invalidate(ctx context.Context, userID workouts.UserID)
}

const (
	opSubmitPlan      = "submit_plan"
	opSubmitCatalogue = "submit_catalogue"
	opRecordSession   = "record_session"

	DefaultMaxRetries = 3
)

// SessionResult carries the progress points produced by a recorded
// session: every matched exercise's estimate stamped on the session date
// and the day after it.
type SessionResult struct {
	Date     workouts.CalendarDate      `json:"date"`
	Progress map[string]progress.Series `json:"progress"`
	Ignored  []string                   `json:"ignored"`
}

type Engine struct {
	catalogue  catalogueStore
	logs       logStore
	projector  projectionInvalidator
	metrics    *metrics.Manager
	maxRetries uint64
	// NewBackOff can be replaced in tests to avoid waiting between retries
	NewBackOff func() backoff.BackOff
}

func New(
	catalogue catalogueStore,
	logs logStore,
	projector projectionInvalidator,
	metricsManager *metrics.Manager,
) *Engine {
	return &Engine{
		catalogue:  catalogue,
		logs:       logs,
		projector:  projector,
		metrics:    metricsManager,
		maxRetries: DefaultMaxRetries,
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		},
	}
}

// SubmitPlan replaces the user's logs in [start, end] with plan.
func (e *Engine) SubmitPlan(
	ctx context.Context,
	userID workouts.UserID,
	start, end workouts.CalendarDate,
	plan map[workouts.CalendarDate][]workouts.ExerciseLog,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.submitPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))
	defer e.observe(opSubmitPlan, time.Now(), &err)

	if err := logs.ValidateRange(start, end, plan); err != nil {
		return err
	}
	for d, entries := range plan {
		if err := validateEstimable(d, entries); err != nil {
			return err
		}
	}

	if err := e.withRetry(ctx, opSubmitPlan, func() error {
		return e.logs.ReplaceRange(ctx, userID, start, end, plan)
	}); err != nil {
		return fmt.Errorf("submit plan: %w", err)
	}

	e.projector.Invalidate(ctx, userID)
	return nil
}

// SubmitCatalogue reconciles the user's catalogue with desired.
func (e *Engine) SubmitCatalogue(
	ctx context.Context,
	userID workouts.UserID,
	desired map[string][]workouts.Muscle,
) (_ catalogue.ReconcileResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.submitCatalogue")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))
	defer e.observe(opSubmitCatalogue, time.Now(), &err)

	for name, muscles := range desired {
		for _, m := range muscles {
			if !m.Valid() {
				return catalogue.ReconcileResult{}, workouts.InvalidReference(fmt.Sprintf("unknown muscle [%s] for exercise [%s]", m, name))
			}
		}
	}

	var result catalogue.ReconcileResult
	if err := e.withRetry(ctx, opSubmitCatalogue, func() error {
		var err error
		result, err = e.catalogue.Reconcile(ctx, userID, desired)
		return err
	}); err != nil {
		return catalogue.ReconcileResult{}, fmt.Errorf("submit catalogue: %w", err)
	}

	if len(result.Inserted) > 0 || len(result.Deleted) > 0 {
		e.projector.Invalidate(ctx, userID)
	}
	return result, nil
}

// RecordSession updates the entries of one day in place and returns the
// progress points of every matched entry.
func (e *Engine) RecordSession(
	ctx context.Context,
	userID workouts.UserID,
	date workouts.CalendarDate,
	entries []workouts.ExerciseLog,
) (_ SessionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.recordSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))
	defer e.observe(opRecordSession, time.Now(), &err)

	if date.IsZero() {
		return SessionResult{}, workouts.InvalidInput("session date required", nil)
	}
	for _, el := range entries {
		if err := el.Validate(); err != nil {
			return SessionResult{}, err
		}
	}
	if err := validateEstimable(date, entries); err != nil {
		return SessionResult{}, err
	}

	var updated logs.UpdateResult
	if err := e.withRetry(ctx, opRecordSession, func() error {
		var err error
		updated, err = e.logs.UpdateEntries(ctx, userID, date, entries)
		return err
	}); err != nil {
		return SessionResult{}, fmt.Errorf("record session: %w", err)
	}

	result := SessionResult{
		Date:     date,
		Progress: make(map[string]progress.Series, len(updated.Matched)),
		Ignored:  make([]string, 0, len(updated.Ignored)),
	}

	best := make(map[string]float64, len(updated.Matched))
	for _, el := range updated.Matched {
		est, err := progress.EstimateEntry(el)
		if err != nil {
			// validated above, only reachable if the store altered the entry
			return SessionResult{}, fmt.Errorf("estimate [%s]: %w", el.Exercise, err)
		}
		if current, ok := best[el.Exercise]; !ok || est > current {
			best[el.Exercise] = est
		}
	}
	for name, est := range best {
		result.Progress[name] = progress.Stamp(date, est)
	}

	for _, el := range updated.Ignored {
		result.Ignored = append(result.Ignored, el.Exercise)
	}
	if len(result.Ignored) > 0 {
		log.Warnf("record session user %d [%s]: %d entries matched nothing: %v", userID, date, len(result.Ignored), result.Ignored)
	}

	if len(updated.Matched) > 0 {
		e.projector.Invalidate(ctx, userID)
	}
	return result, nil
}

// validateEstimable rejects entries the progress calculator cannot turn
// into an estimate, so every stored entry has one.
func validateEstimable(date workouts.CalendarDate, entries []workouts.ExerciseLog) error {
	for _, el := range entries {
		if _, err := progress.EstimateEntry(el); err != nil {
			return workouts.InvalidInput(fmt.Sprintf("entry [%s] on [%s]", el.Exercise, date), err)
		}
	}
	return nil
}

// withRetry runs fn again with exponential backoff while it fails with a
// transient store error. Anything else is returned at once.
func (e *Engine) withRetry(ctx context.Context, op string, fn func() error) error {
	b := backoff.WithContext(backoff.WithMaxRetries(e.NewBackOff(), e.maxRetries), ctx)
	return backoff.RetryNotify(
		func() error {
			err := fn()
			if err == nil {
				return nil
			}
			if !pkg.IsTransientDBError(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		b,
		func(err error, wait time.Duration) {
			log.Warnf("%s: transient store failure, retrying in %s: %s", op, wait, err)
			if e.metrics != nil {
				e.metrics.CounterEngineRetries.WithLabelValues(op).Inc()
			}
		},
	)
}

func (e *Engine) observe(op string, begin time.Time, errp *error) {
	if e.metrics == nil {
		return
	}
	outcome := "ok"
	if *errp != nil {
		outcome = string(workouts.KindOf(*errp))
		if outcome == "" {
			outcome = "error"
		}
	}
	e.metrics.CounterEngineOps.WithLabelValues(op, outcome).Inc()
	e.metrics.HistogramEngineDuration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}
