package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

type userIDKey struct{}

func WithUserID(ctx context.Context, userID workouts.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user the request was authenticated as.
func UserIDFromContext(ctx context.Context) (workouts.UserID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(workouts.UserID)
	return userID, ok
}

const SessionTokenHeader = "X-Session-Token"

// TokenFromRequest reads the session token from "Authorization: Bearer
// <token>", falling back to the X-Session-Token header.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if token, ok := strings.CutPrefix(authz, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.Header.Get(SessionTokenHeader)
}
