// Package projector builds the read views of a user's workouts: the
// exercise catalogue with progress series, and the calendar of logs.
// Views are cached as JSON and dropped whenever the user writes.
package projector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/telemetry/metrics"
	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
	"github.com/nicklany01/workout-scheduler/internal/workouts/progress"
)

//go:generate mockgen -source=$GOFILE -destination=projector_mocks_test.go -package=projector_test

type exerciseLister interface {
	ListVisible(ctx context.Context, userID workouts.UserID) ([]workouts.Exercise, error)
}

type logLister interface {
	ListFrom(ctx context.Context, userID workouts.UserID, since workouts.CalendarDate) ([]workouts.Log, error)
}

const (
	viewExercises = "exercises"
	viewLogs      = "logs"

	DefaultCacheSize = 32 * 1024 * 1024
	DefaultCacheTTL  = 10 * time.Minute
)

type ExerciseView struct {
	Muscles  []workouts.Muscle `json:"muscles"`
	Global   bool              `json:"global"`
	Progress progress.Series   `json:"progress"`
}

type DayView struct {
	ExerciseLogs []workouts.ExerciseLog `json:"exerciseLogs"`
}

type Params struct {
	Exercises   exerciseLister
	Logs        logLister
	Generations GenerationStore
	CacheSize   int
	CacheTTL    time.Duration
	Metrics     *metrics.Manager
}

type Projector struct {
	exercises   exerciseLister
	logs        logLister
	generations GenerationStore
	cache       *freecache.Cache
	ttlSeconds  int
	metrics     *metrics.Manager
}

func New(params Params) *Projector {
	if params.CacheSize <= 0 {
		params.CacheSize = DefaultCacheSize
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = DefaultCacheTTL
	}
	if params.Generations == nil {
		params.Generations = NewLocalGenerations()
	}
	return &Projector{
		exercises:   params.Exercises,
		logs:        params.Logs,
		generations: params.Generations,
		cache:       freecache.NewCache(params.CacheSize),
		ttlSeconds:  int(params.CacheTTL.Seconds()),
		metrics:     params.Metrics,
	}
}

// Exercises maps every exercise visible to the user to its muscles and
// its progress series, folded from this user's logs only.
func (p *Projector) Exercises(ctx context.Context, userID workouts.UserID) (_ map[string]ExerciseView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projector.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	views := make(map[string]ExerciseView)
	err = p.cached(ctx, viewExercises, userID, "", &views, func() error {
		exercises, err := p.exercises.ListVisible(ctx, userID)
		if err != nil {
			return fmt.Errorf("list visible exercises: %w", err)
		}
		logs, err := p.logs.ListFrom(ctx, userID, workouts.CalendarDate{})
		if err != nil {
			return fmt.Errorf("list logs: %w", err)
		}

		series, foldErr := progress.FoldLogs(logs)
		if foldErr != nil {
			log.Warnf("exercises view user %d, some entries have no estimate: %s", userID, foldErr)
		}

		for _, ex := range exercises {
			s := series[ex.Name]
			if s == nil {
				s = progress.Series{}
			}
			views[ex.Name] = ExerciseView{
				Muscles:  ex.Muscles,
				Global:   ex.IsGlobal(),
				Progress: s,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}

// Logs maps each date (since or later, all when since is zero) to the
// entries logged that day.
func (p *Projector) Logs(ctx context.Context, userID workouts.UserID, since workouts.CalendarDate) (_ map[workouts.CalendarDate]DayView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "projector.logs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("since", since.String()),
	)

	views := make(map[workouts.CalendarDate]DayView)
	err = p.cached(ctx, viewLogs, userID, since.String(), &views, func() error {
		logs, err := p.logs.ListFrom(ctx, userID, since)
		if err != nil {
			return fmt.Errorf("list logs: %w", err)
		}
		for _, l := range logs {
			views[l.Date] = DayView{ExerciseLogs: l.Entries}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}

// Invalidate drops every cached view of the user. Views computed before
// this call are never served after it.
func (p *Projector) Invalidate(ctx context.Context, userID workouts.UserID) {
	if err := p.generations.Bump(ctx, userID); err != nil {
		// without a new generation the old keys would stay reachable
		log.Errorf("bump projection generation for user %d: %s, clearing local cache", userID, err)
		p.cache.Clear()
	}
}

// cached fills dst from the cache, or runs compute (which must fill dst)
// and stores the result. Cache trouble never fails the read.
func (p *Projector) cached(
	ctx context.Context,
	view string,
	userID workouts.UserID,
	variant string,
	dst any,
	compute func() error,
) error {
	gen, err := p.generations.Current(ctx, userID)
	if err != nil {
		log.Errorf("projection generation for user %d: %s, bypassing cache", userID, err)
		return compute()
	}

	key := []byte(fmt.Sprintf("%s|%d|%d|%s", view, userID, gen, variant))
	raw, err := p.cache.Get(key)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, dst); err == nil {
			p.count(view, "hit")
			return nil
		}
		log.Warnf("projection cache [%s]: corrupt entry, recomputing", key)
		p.cache.Del(key)
	case !errors.Is(err, freecache.ErrNotFound):
		log.Warnf("projection cache [%s]: %s", key, err)
	}
	p.count(view, "miss")

	if err := compute(); err != nil {
		return err
	}

	raw, err = json.Marshal(dst)
	if err != nil {
		log.Warnf("projection cache [%s]: marshal: %s", key, err)
		return nil
	}
	if err := p.cache.Set(key, raw, p.ttlSeconds); err != nil {
		// freecache refuses entries larger than 1/1024 of its size
		log.Debugf("projection cache [%s]: not stored: %s", key, err)
	}
	return nil
}

func (p *Projector) count(view, result string) {
	if p.metrics == nil {
		return
	}
	p.metrics.CounterProjectionCache.WithLabelValues(view, result).Inc()
}
