package projector

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

// GenerationStore hands out a per-user counter that changes on every
// write. Cache keys embed it, so bumping it orphans all cached views of
// that user at once.
type GenerationStore interface {
	Current(ctx context.Context, userID workouts.UserID) (uint64, error)
	Bump(ctx context.Context, userID workouts.UserID) error
}

var (
	_ GenerationStore = (*LocalGenerations)(nil)
	_ GenerationStore = (*RedisGenerations)(nil)
)

// LocalGenerations keeps the counters in process memory. Only correct
// while a single instance serves the users.
type LocalGenerations struct {
	mutex       sync.Mutex
	generations map[workouts.UserID]uint64
}

func NewLocalGenerations() *LocalGenerations {
	return &LocalGenerations{
		generations: make(map[workouts.UserID]uint64),
	}
}

func (g *LocalGenerations) Current(_ context.Context, userID workouts.UserID) (uint64, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.generations[userID], nil
}

func (g *LocalGenerations) Bump(_ context.Context, userID workouts.UserID) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.generations[userID]++
	return nil
}

const generationKeyPrefix = "workouts-projection-gen||"

// RedisGenerations shares the counters between instances. A missing
// counter (new user, flushed or restarted redis) starts from a fresh base
// instead of zero, so it never lands on a generation an instance may
// still hold cached views for.
type RedisGenerations struct {
	redisClient *redis.Client
	// BaseFunc returns the starting value of a missing counter; replaceable in tests
	BaseFunc func() uint64
}

func NewRedisGenerations(redisClient *redis.Client) *RedisGenerations {
	return &RedisGenerations{
		redisClient: redisClient,
		BaseFunc: func() uint64 {
			return uint64(time.Now().UnixNano())
		},
	}
}

func generationKey(userID workouts.UserID) string {
	return generationKeyPrefix + strconv.FormatInt(int64(userID), 10)
}

func (g *RedisGenerations) Current(ctx context.Context, userID workouts.UserID) (uint64, error) {
	key := generationKey(userID)
	cmd := g.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			return 0, err
		}
		base := g.BaseFunc()
		seeded, err := g.seed(ctx, key, base)
		if err != nil {
			return 0, err
		}
		if seeded {
			return base, nil
		}
		// another instance seeded it first
		return g.redisClient.Get(ctx, key).Uint64()
	}
	return cmd.Uint64()
}

func (g *RedisGenerations) Bump(ctx context.Context, userID workouts.UserID) error {
	key := generationKey(userID)
	// a bare INCR on a lost key would restart the counter at 1
	if _, err := g.seed(ctx, key, g.BaseFunc()); err != nil {
		return err
	}
	return g.redisClient.Incr(ctx, key).Err()
}

func (g *RedisGenerations) seed(ctx context.Context, key string, base uint64) (bool, error) {
	return g.redisClient.SetNX(ctx, key, base, 0).Result()
}
