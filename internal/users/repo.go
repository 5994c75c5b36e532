// Package users stores the accounts that own exercises and logs.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const selectUserSQL = `
	SELECT id, username, password_hash, preferred_name, email
	FROM app_user`

func (r *Repo) Create(ctx context.Context, user *workouts.User) (_ *workouts.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if user.Username == "" || user.PasswordHash == "" {
		return nil, workouts.InvalidInput("username and password required", nil)
	}

	var id int64
	if err := r.db.QueryRow(
		ctx,
		`INSERT INTO app_user (username, password_hash, preferred_name, email)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.PasswordHash, user.PreferredName, user.Email,
	).Scan(&id); err != nil {
		return nil, workouts.StoreError(fmt.Sprintf("create user [%s]", user.Username), err)
	}

	created := *user
	created.ID = workouts.UserID(id)
	span.SetAttributes(attribute.Int64("user.id", id))

	return &created, nil
}

func (r *Repo) Get(ctx context.Context, userID workouts.UserID) (_ *workouts.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)))

	return r.getOne(ctx, selectUserSQL+` WHERE id = $1`, int64(userID))
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *workouts.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, selectUserSQL+` WHERE username = $1`, username)
}

func (r *Repo) getOne(ctx context.Context, query string, arg any) (*workouts.User, error) {
	var (
		user workouts.User
		id   int64
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id, &user.Username, &user.PasswordHash, &user.PreferredName, &user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workouts.NotFound(fmt.Sprintf("user [%v] not found", arg))
		}
		return nil, workouts.StoreError("get user", err)
	}
	user.ID = workouts.UserID(id)

	return &user, nil
}
