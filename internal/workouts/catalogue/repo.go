package catalogue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/db"
	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

type ReconcileResult struct {
	Inserted []string `json:"inserted"`
	Deleted  []string `json:"deleted"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// querier is the part of pgx shared by the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ListVisible returns the global exercises plus the ones owned by userID,
// ordered by name.
func (r *Repo) ListVisible(ctx context.Context, userID workouts.UserID) (_ []workouts.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalogue.listVisible")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	exercises, err := listVisible(ctx, r.db, userID)
	if err != nil {
		return nil, workouts.StoreError("list visible exercises", err)
	}
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	return exercises, nil
}

func listVisible(ctx context.Context, q querier, userID workouts.UserID) ([]workouts.Exercise, error) {
	rows, err := q.Query(
		ctx,
		`
			SELECT
				e.id, e.name, e.user_id,
				COALESCE(array_agg(m.name ORDER BY m.id) FILTER (WHERE m.name IS NOT NULL), '{}')
			FROM exercise e
			LEFT JOIN exercise_muscle em ON em.exercise_id = e.id
			LEFT JOIN muscle m ON m.id = em.muscle_id
			WHERE e.user_id IS NULL OR e.user_id = $1
			GROUP BY e.id
			ORDER BY e.name, e.user_id NULLS FIRST;`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []workouts.Exercise
	for rows.Next() {
		var (
			ex      workouts.Exercise
			ownerID *int64
			muscles []string
		)
		if err := rows.Scan(&ex.ID, &ex.Name, &ownerID, &muscles); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if ownerID != nil {
			owner := workouts.UserID(*ownerID)
			ex.OwnerID = &owner
		}
		ex.Muscles = make([]workouts.Muscle, 0, len(muscles))
		for _, m := range muscles {
			ex.Muscles = append(ex.Muscles, workouts.Muscle(m))
		}
		exercises = append(exercises, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// Reconcile moves the user's catalogue to desired in one transaction:
// private exercises missing from desired are deleted (their log entries
// cascade), names not yet visible are inserted with their muscles.
// Any failure rolls back the whole call.
func (r *Repo) Reconcile(
	ctx context.Context,
	userID workouts.UserID,
	desired map[string][]workouts.Muscle,
) (_ ReconcileResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalogue.reconcile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int64("user.id", int64(userID)),
		attribute.Int("desired.count", len(desired)),
	)

	desired, err = canonicalDesired(desired)
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		Inserted: []string{},
		Deleted:  []string{},
	}
	err = db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := db.LockUser(ctx, tx, int64(userID)); err != nil {
			return err
		}

		visible, err := listVisible(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("list visible [step read]: %w", err)
		}

		current := make([]Visible, 0, len(visible))
		for _, ex := range visible {
			current = append(current, Visible{Name: ex.Name, Global: ex.IsGlobal()})
		}

		changes := Diff(current, desired)
		if len(changes) == 0 {
			return nil
		}

		muscleIDs, err := resolveMuscles(ctx, tx, changes)
		if err != nil {
			return err
		}

		for _, change := range changes {
			log.Tracef("catalogue user %d: %s [%s]", userID, change.Op, change.Name)
			switch change.Op {
			case OpDelete:
				if err := deleteExercise(ctx, tx, userID, change.Name); err != nil {
					return fmt.Errorf("delete [%s]: %w", change.Name, err)
				}
				result.Deleted = append(result.Deleted, change.Name)
			case OpInsert:
				if err := insertExercise(ctx, tx, userID, change, muscleIDs); err != nil {
					return fmt.Errorf("insert [%s]: %w", change.Name, err)
				}
				result.Inserted = append(result.Inserted, change.Name)
			}
		}

		return nil
	})
	if err != nil {
		return ReconcileResult{}, workouts.StoreError("reconcile catalogue", err)
	}

	sort.Strings(result.Inserted)
	sort.Strings(result.Deleted)
	log.Debugf("catalogue reconciled for user %d: +%d -%d", userID, len(result.Inserted), len(result.Deleted))

	return result, nil
}

// canonicalDesired checks the names and rewrites every muscle to its
// canonical spelling, the one stored in the muscle table.
func canonicalDesired(desired map[string][]workouts.Muscle) (map[string][]workouts.Muscle, error) {
	canonical := make(map[string][]workouts.Muscle, len(desired))
	for name, muscles := range desired {
		if strings.TrimSpace(name) == "" {
			return nil, workouts.InvalidInput("exercise name empty", nil)
		}
		parsed := make([]workouts.Muscle, 0, len(muscles))
		for _, m := range muscles {
			muscle, err := workouts.ParseMuscle(string(m))
			if err != nil {
				return nil, workouts.InvalidReference(fmt.Sprintf("unknown muscle [%s] for exercise [%s]", m, name))
			}
			parsed = append(parsed, muscle)
		}
		canonical[name] = parsed
	}
	return canonical, nil
}

func resolveMuscles(ctx context.Context, tx pgx.Tx, changes []Change) (map[workouts.Muscle]int, error) {
	var names []string
	seen := make(map[workouts.Muscle]bool)
	for _, change := range changes {
		if change.Op != OpInsert {
			continue
		}
		if len(change.Muscles) == 0 {
			return nil, workouts.InvalidInput(fmt.Sprintf("exercise [%s] needs at least one muscle", change.Name), nil)
		}
		for _, m := range change.Muscles {
			if !seen[m] {
				seen[m] = true
				names = append(names, string(m))
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	rows, err := tx.Query(ctx, `SELECT id, name FROM muscle WHERE name = ANY($1);`, names)
	if err != nil {
		return nil, fmt.Errorf("resolve muscles: %w", err)
	}
	defer rows.Close()

	ids := make(map[workouts.Muscle]int, len(names))
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		ids[workouts.Muscle(name)] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, name := range names {
		if _, ok := ids[workouts.Muscle(name)]; !ok {
			return nil, workouts.InvalidReference(fmt.Sprintf("unknown muscle [%s]", name))
		}
	}

	return ids, nil
}

func deleteExercise(ctx context.Context, tx pgx.Tx, userID workouts.UserID, name string) error {
	// user_id = $2 keeps globals out of reach
	_, err := tx.Exec(ctx, `DELETE FROM exercise WHERE name = $1 AND user_id = $2;`, name, int64(userID))
	return err
}

func insertExercise(
	ctx context.Context,
	tx pgx.Tx,
	userID workouts.UserID,
	change Change,
	muscleIDs map[workouts.Muscle]int,
) error {
	var exerciseID int64
	err := tx.QueryRow(
		ctx,
		`INSERT INTO exercise (name, user_id)
			SELECT $1, $2
			WHERE NOT EXISTS (
				SELECT 1 FROM exercise WHERE name = $1 AND (user_id IS NULL OR user_id = $2)
			)
		RETURNING id;`,
		change.Name, int64(userID),
	).Scan(&exerciseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return workouts.Conflict(fmt.Sprintf("exercise [%s] already exists", change.Name))
	}
	if err != nil {
		return err
	}

	for _, m := range change.Muscles {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO exercise_muscle (exercise_id, muscle_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;`,
			exerciseID, muscleIDs[m],
		); err != nil {
			return fmt.Errorf("associate muscle [%s]: %w", m, err)
		}
	}

	return nil
}
