package pkg

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsUniqueViolationError(unique))
	assert.False(t, IsUniqueViolationError(fk))
	assert.True(t, IsForeignKeyViolationError(fk))
	assert.True(t, IsCheckViolationError(check))
	assert.False(t, IsUniqueViolationError(errors.New("23505")))
	assert.False(t, IsUniqueViolationError(nil))
}

func TestIsTransientDBError(t *testing.T) {
	assert.True(t, IsTransientDBError(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsTransientDBError(fmt.Errorf("tx: %w", &pgconn.PgError{Code: "40P01"})))
	assert.True(t, IsTransientDBError(&net.OpError{Op: "read", Err: errors.New("connection reset")}))

	assert.False(t, IsTransientDBError(nil))
	assert.False(t, IsTransientDBError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsTransientDBError(errors.New("boom")))
}
