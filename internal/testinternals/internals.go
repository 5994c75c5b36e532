// Package testinternals starts throwaway Postgres and Redis containers
// for store and session tests.
package testinternals

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	log "github.com/sirupsen/logrus"

	"github.com/nicklany01/workout-scheduler/internal/db"
)

// ErrDockerUnavailable is returned when no docker daemon can be reached,
// tests treat it as a reason to skip.
var ErrDockerUnavailable = errors.New("docker unavailable")

const (
	testDBName           = "workouts_test"
	containerExpireAfter = 180 // seconds
)

type Internals struct {
	DBPool      *pgxpool.Pool
	DBParams    db.NewDBPoolParams
	RedisClient *redis.Client
	RedisPort   string

	dockerPool *dockertest.Pool
	teardown   []func()
}

func newDockerPool() (*dockertest.Pool, error) {
	if os.Getenv("SKIP_DOCKER_TESTS") == "true" {
		return nil, ErrDockerUnavailable
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}
	dockerPool.MaxWait = time.Minute
	return dockerPool, nil
}

// StartPostgres runs postgres in docker, waits until it accepts connections
// and applies the schema.
func StartPostgres(ctx context.Context) (*Internals, error) {
	dockerPool, err := newDockerPool()
	if err != nil {
		return nil, err
	}

	internals := &Internals{dockerPool: dockerPool}

	pgResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=" + testDBName,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run postgres: %w", err)
	}
	internals.teardown = append(internals.teardown, func() {
		if err := dockerPool.Purge(pgResource); err != nil {
			log.Errorf("purge postgres container: %s", err)
		}
	})
	if err := pgResource.Expire(containerExpireAfter); err != nil {
		log.Warnf("set postgres container expiry: %s", err)
	}

	params := db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: pgResource.GetPort("5432/tcp"),
		DBName: testDBName,
	}
	if err := dockerPool.Retry(func() error {
		pool, err := db.NewDBPool(ctx, params)
		if err != nil {
			return err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return err
		}
		internals.DBPool = pool
		internals.DBParams = params
		return nil
	}); err != nil {
		internals.Cleanup()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Migrate(ctx, internals.DBPool); err != nil {
		internals.Cleanup()
		return nil, err
	}

	return internals, nil
}

func StartRedis(ctx context.Context) (*Internals, error) {
	dockerPool, err := newDockerPool()
	if err != nil {
		return nil, err
	}

	internals := &Internals{dockerPool: dockerPool}

	redisResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return nil, fmt.Errorf("run redis: %w", err)
	}
	internals.teardown = append(internals.teardown, func() {
		if err := dockerPool.Purge(redisResource); err != nil {
			log.Errorf("purge redis container: %s", err)
		}
	})
	if err := redisResource.Expire(containerExpireAfter); err != nil {
		log.Warnf("set redis container expiry: %s", err)
	}

	internals.RedisPort = redisResource.GetPort("6379/tcp")
	rdb := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort("localhost", internals.RedisPort),
		DB:   0, // use default DB
	})
	if err := dockerPool.Retry(func() error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		_ = rdb.Close()
		internals.Cleanup()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	internals.RedisClient = rdb

	return internals, nil
}

// TruncateAll empties every table except the seeded muscles.
func (i *Internals) TruncateAll(ctx context.Context) error {
	_, err := i.DBPool.Exec(ctx, `TRUNCATE exercise_log, workout_log, exercise_muscle, exercise, app_user RESTART IDENTITY CASCADE`)
	return err
}

// CreateUser inserts a user with a throwaway password hash and returns its id.
func (i *Internals) CreateUser(ctx context.Context, username string) (int64, error) {
	var id int64
	err := i.DBPool.QueryRow(
		ctx,
		`INSERT INTO app_user (username, password_hash, preferred_name, email) VALUES ($1, $2, $3, $4) RETURNING id`,
		username, "-", username, username+"@example.com",
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create user %s: %w", username, err)
	}
	return id, nil
}

// CreateGlobalExercise inserts an exercise visible to every user.
func (i *Internals) CreateGlobalExercise(ctx context.Context, name string, muscles ...string) error {
	var id int64
	if err := i.DBPool.QueryRow(
		ctx,
		`INSERT INTO exercise (name, user_id) VALUES ($1, NULL) RETURNING id`,
		name,
	).Scan(&id); err != nil {
		return fmt.Errorf("create global exercise %s: %w", name, err)
	}
	if _, err := i.DBPool.Exec(
		ctx,
		`INSERT INTO exercise_muscle (exercise_id, muscle_id) SELECT $1, id FROM muscle WHERE name = ANY($2)`,
		id, muscles,
	); err != nil {
		return fmt.Errorf("associate muscles of %s: %w", name, err)
	}
	return nil
}

func (i *Internals) Cleanup() {
	if i.DBPool != nil {
		i.DBPool.Close()
	}
	if i.RedisClient != nil {
		_ = i.RedisClient.Close()
	}
	for _, teardown := range i.teardown {
		teardown()
	}
}
