package logs

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/db"
	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

// UpdateResult splits the submitted entries into those that matched an
// existing (user, date, exercise) row and those that did not.
type UpdateResult struct {
	Matched []workouts.ExerciseLog `json:"matched"`
	Ignored []workouts.ExerciseLog `json:"ignored"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const selectLogsSQL = `
	SELECT
		wl.id, wl.log_date, e.name, el.sets, el.reps, el.weight
	FROM workout_log wl
	LEFT JOIN exercise_log el ON el.log_id = wl.id
	LEFT JOIN exercise e ON e.id = el.exercise_id
	WHERE wl.user_id = $1 AND wl.log_date >= $2 AND wl.log_date <= $3
	ORDER BY wl.log_date, el.position;`

// Get returns the user's log for date, or a NotFound error.
func (r *Repo) Get(ctx context.Context, userID workouts.UserID, date workouts.CalendarDate) (_ *workouts.Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("date", date.String()),
	)

	if date.IsZero() {
		return nil, workouts.InvalidInput("date required", nil)
	}

	logs, err := r.query(ctx, userID, date, date)
	if err != nil {
		return nil, workouts.StoreError("get log", err)
	}
	if len(logs) == 0 {
		return nil, workouts.NotFound(fmt.Sprintf("no log on [%s]", date))
	}

	return &logs[0], nil
}

// ListFrom returns the user's logs dated since or later, ascending by
// date. A zero since lists everything.
func (r *Repo) ListFrom(ctx context.Context, userID workouts.UserID, since workouts.CalendarDate) (_ []workouts.Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.listFrom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("since", since.String()),
	)

	from := since
	if from.IsZero() {
		from = workouts.NewDate(1, time.January, 1)
	}

	logs, err := r.query(ctx, userID, from, workouts.NewDate(9999, time.December, 31))
	if err != nil {
		return nil, workouts.StoreError("list logs", err)
	}
	span.SetAttributes(attribute.Int("logs.count", len(logs)))

	return logs, nil
}

func (r *Repo) query(ctx context.Context, userID workouts.UserID, from, to workouts.CalendarDate) ([]workouts.Log, error) {
	rows, err := r.db.Query(ctx, selectLogsSQL, int64(userID), from.Time(), to.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []workouts.Log
	for rows.Next() {
		var (
			logID   int64
			logDate time.Time
			name    *string
			sets    *int
			reps    *int
			weight  *float64
		)
		if err := rows.Scan(&logID, &logDate, &name, &sets, &reps, &weight); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if len(logs) == 0 || logs[len(logs)-1].ID != logID {
			logs = append(logs, workouts.Log{
				ID:      logID,
				UserID:  userID,
				Date:    workouts.DateOf(logDate),
				Entries: []workouts.ExerciseLog{},
			})
		}

		// a log without entries still yields one row of NULLs
		if name == nil {
			continue
		}
		current := &logs[len(logs)-1]
		current.Entries = append(current.Entries, workouts.ExerciseLog{
			Exercise: *name,
			Sets:     deref(sets),
			Reps:     deref(reps),
			Weight:   deref(weight),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

// ReplaceRange makes newLogs the only logs of the user within
// [start, end]: existing logs in the range are deleted (entries cascade)
// and each new log is inserted with its entries in submitted order.
// Exercise names resolve within the user's visible catalogue. The call is
// atomic and replaying it yields the same end state.
func (r *Repo) ReplaceRange(
	ctx context.Context,
	userID workouts.UserID,
	start, end workouts.CalendarDate,
	newLogs map[workouts.CalendarDate][]workouts.ExerciseLog,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.replaceRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("range.start", start.String()),
		attribute.String("range.end", end.String()),
		attribute.Int("logs.count", len(newLogs)),
	)

	if err := ValidateRange(start, end, newLogs); err != nil {
		return err
	}

	dates := make([]workouts.CalendarDate, 0, len(newLogs))
	var names []string
	seen := make(map[string]bool)
	for d, entries := range newLogs {
		dates = append(dates, d)
		for _, el := range entries {
			if !seen[el.Exercise] {
				seen[el.Exercise] = true
				names = append(names, el.Exercise)
			}
		}
	}
	slices.SortFunc(dates, workouts.CalendarDate.Compare)

	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := db.LockUser(ctx, tx, int64(userID)); err != nil {
			return err
		}

		tag, err := tx.Exec(
			ctx,
			`DELETE FROM workout_log WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3;`,
			int64(userID), start.Time(), end.Time(),
		)
		if err != nil {
			return fmt.Errorf("delete range [step delete]: %w", err)
		}
		log.Debugf("replace range user %d [%s, %s]: %d logs removed", userID, start, end, tag.RowsAffected())

		exerciseIDs, err := resolveExercises(ctx, tx, userID, names)
		if err != nil {
			return err
		}

		var entryRows [][]any
		for _, d := range dates {
			var logID int64
			if err := tx.QueryRow(
				ctx,
				`INSERT INTO workout_log (user_id, log_date) VALUES ($1, $2) RETURNING id;`,
				int64(userID), d.Time(),
			).Scan(&logID); err != nil {
				return fmt.Errorf("insert log [%s] [step insert]: %w", d, err)
			}

			for pos, el := range newLogs[d] {
				entryRows = append(entryRows, []any{logID, exerciseIDs[el.Exercise], pos, el.Sets, el.Reps, el.Weight})
			}
		}

		if len(entryRows) == 0 {
			return nil
		}

		if _, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"exercise_log"},
			[]string{"log_id", "exercise_id", "position", "sets", "reps", "weight"},
			pgx.CopyFromRows(entryRows),
		); err != nil {
			return fmt.Errorf("copy exercise logs [step insert]: %w", err)
		}

		return nil
	})
	if err != nil {
		return workouts.StoreError("replace range", err)
	}

	return nil
}

// ValidateRange checks the bounds and that every new log falls inside them
// and carries well formed entries.
func ValidateRange(start, end workouts.CalendarDate, newLogs map[workouts.CalendarDate][]workouts.ExerciseLog) error {
	if start.IsZero() || end.IsZero() {
		return workouts.InvalidInput("start and end dates required", nil)
	}
	if start.After(end) {
		return workouts.InvalidInput(fmt.Sprintf("start [%s] after end [%s]", start, end), nil)
	}
	for d, entries := range newLogs {
		if !d.Within(start, end) {
			return workouts.InvalidInput(fmt.Sprintf("log date [%s] outside range [%s, %s]", d, start, end), nil)
		}
		for _, el := range entries {
			if err := el.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func resolveExercises(ctx context.Context, tx pgx.Tx, userID workouts.UserID, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	if len(names) == 0 {
		return ids, nil
	}

	rows, err := tx.Query(
		ctx,
		`SELECT DISTINCT ON (name) id, name
			FROM exercise
			WHERE name = ANY($1) AND (user_id IS NULL OR user_id = $2)
			ORDER BY name, user_id NULLS LAST;`,
		names, int64(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range names {
		if _, ok := ids[name]; !ok {
			return nil, workouts.InvalidReference(fmt.Sprintf("unknown exercise [%s]", name))
		}
	}

	return ids, nil
}

// UpdateEntries overwrites sets/reps/weight of the entries matching
// (user, date, exercise name). Entries that match nothing are left out of
// the write and reported back as ignored.
func (r *Repo) UpdateEntries(
	ctx context.Context,
	userID workouts.UserID,
	date workouts.CalendarDate,
	entries []workouts.ExerciseLog,
) (_ UpdateResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.updateEntries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.String("date", date.String()),
		attribute.Int("entries.count", len(entries)),
	)

	if date.IsZero() {
		return UpdateResult{}, workouts.InvalidInput("date required", nil)
	}
	for _, el := range entries {
		if err := el.Validate(); err != nil {
			return UpdateResult{}, err
		}
	}

	result := UpdateResult{
		Matched: []workouts.ExerciseLog{},
		Ignored: []workouts.ExerciseLog{},
	}
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := db.LockUser(ctx, tx, int64(userID)); err != nil {
			return err
		}

		for _, el := range entries {
			tag, err := tx.Exec(
				ctx,
				`UPDATE exercise_log el
					SET sets = $1, reps = $2, weight = $3
					FROM workout_log wl, exercise e
					WHERE el.log_id = wl.id
						AND el.exercise_id = e.id
						AND wl.user_id = $4
						AND wl.log_date = $5
						AND e.name = $6;`,
				el.Sets, el.Reps, el.Weight, int64(userID), date.Time(), el.Exercise,
			)
			if err != nil {
				return fmt.Errorf("update [%s]: %w", el.Exercise, err)
			}
			if tag.RowsAffected() == 0 {
				result.Ignored = append(result.Ignored, el)
				continue
			}
			result.Matched = append(result.Matched, el)
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, workouts.StoreError("update entries", err)
	}

	span.SetAttributes(attribute.Int("entries.ignored", len(result.Ignored)))
	return result, nil
}
