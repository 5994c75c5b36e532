package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/nicklany01/workout-scheduler/internal/config"
	"github.com/nicklany01/workout-scheduler/internal/db"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

// globalsFile lists exercises visible to every user:
//
//	[exercises]
//	"Bench Press" = ["Chest", "Triceps"]
type globalsFile struct {
	Exercises map[string][]workouts.Muscle `toml:"exercises"`
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	globalsPath := flag.String("globals", "", "optional TOML file with global exercises to seed")
	sslMode := flag.String("sslmode", "disable", "postgres sslmode")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	params := db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("WORKOUTS_DB_PASS"),
	}
	conn, err := sql.Open("postgres", params.ConnString()+"?sslmode="+*sslMode)
	if err != nil {
		log.Fatalf("open db conn: %s", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatalf("ping db [%s:%s]: %s", params.DBHost, params.DBPort, err)
	}

	if _, err := conn.ExecContext(ctx, db.Schema); err != nil {
		log.Fatalf("apply schema: %s", err)
	}
	log.Infof("schema applied to [%s]", cfg.PostgresDBName)

	if *globalsPath == "" {
		return
	}

	var globals globalsFile
	if _, err := toml.DecodeFile(*globalsPath, &globals); err != nil {
		log.Fatalf("read globals [%s]: %s", *globalsPath, err)
	}
	seeded, err := seedGlobals(ctx, conn, globals.Exercises)
	if err != nil {
		log.Fatalf("seed globals: %s", err)
	}
	log.Infof("global exercises seeded: %d new, %d listed", seeded, len(globals.Exercises))
}

// canonicalGlobals validates the listed exercises and returns their names
// sorted, with every muscle in the spelling stored in the muscle table.
func canonicalGlobals(exercises map[string][]workouts.Muscle) ([]string, map[string][]string, error) {
	names := make([]string, 0, len(exercises))
	muscles := make(map[string][]string, len(exercises))
	for name, listed := range exercises {
		if len(listed) == 0 {
			return nil, nil, fmt.Errorf("exercise [%s] has no muscles", name)
		}
		for _, m := range listed {
			muscle, err := workouts.ParseMuscle(string(m))
			if err != nil {
				return nil, nil, fmt.Errorf("exercise [%s]: %w", name, err)
			}
			muscles[name] = append(muscles[name], string(muscle))
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, muscles, nil
}

// seedGlobals inserts the missing global exercises and their muscles in
// one transaction. Existing globals are left untouched.
func seedGlobals(ctx context.Context, conn *sql.DB, exercises map[string][]workouts.Muscle) (int, error) {
	names, muscles, err := canonicalGlobals(exercises)
	if err != nil {
		return 0, err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// no-op after commit
		_ = tx.Rollback()
	}()

	seeded := 0
	for _, name := range names {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO exercise (name, user_id) VALUES ($1, NULL)
				ON CONFLICT (name) WHERE user_id IS NULL DO NOTHING;`,
			name,
		)
		if err != nil {
			return 0, fmt.Errorf("insert [%s]: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			seeded++
		}

		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO exercise_muscle (exercise_id, muscle_id)
				SELECT e.id, m.id
				FROM exercise e, muscle m
				WHERE e.name = $1 AND e.user_id IS NULL AND m.name = ANY($2)
			ON CONFLICT DO NOTHING;`,
			name, pq.Array(muscles[name]),
		); err != nil {
			return 0, fmt.Errorf("associate muscles [%s]: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return seeded, nil
}
