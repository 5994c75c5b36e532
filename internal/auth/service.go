package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
	"github.com/nicklany01/workout-scheduler/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "workouts-session||"
	tokensSetKey     = "workouts-sessions"
	tokenLength      = 35
	minPasswordLen   = 8
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
)

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*workouts.User, error)
	Create(ctx context.Context, user *workouts.User) (*workouts.User, error)
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	PreferredName string `json:"preferredname"`
	Email         string `json:"email"`
}

// Service hands out session tokens. A session is stored in redis as
// "<user id>:<created at unix>" and also expires there on its own.
type Service struct {
	users       userStore
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	users userStore,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func sessionValue(userID workouts.UserID, createdAt time.Time) string {
	return fmt.Sprintf("%d:%d", userID, createdAt.Unix())
}

func parseSessionValue(val string) (workouts.UserID, time.Time, error) {
	userIDStr, createdAtStr, ok := strings.Cut(val, ":")
	if !ok {
		return 0, time.Time{}, fmt.Errorf("malformed session value [%s]", val)
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("session created at: %w", err)
	}
	return workouts.UserID(userID), time.Unix(createdAtUnix, 0), nil
}

// Login checks the credentials and opens a new session. Unknown users and
// wrong passwords are reported the same way.
func (as *Service) Login(ctx context.Context, creds Credentials, createdAt time.Time) (string, workouts.UserID, error) {
	user, err := as.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, workouts.ErrNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("get user: %w", err)
	}
	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		return "", 0, ErrInvalidCredentials
	}

	token, err := as.openSession(ctx, user.ID, createdAt)
	if err != nil {
		return "", 0, err
	}
	return token, user.ID, nil
}

// Signup creates the user and logs them straight in. A taken username comes
// back as a workouts conflict error.
func (as *Service) Signup(ctx context.Context, req SignupRequest, createdAt time.Time) (string, workouts.UserID, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return "", 0, workouts.InvalidInput("username required", nil)
	}
	if len(req.Password) < minPasswordLen {
		return "", 0, workouts.InvalidInput(fmt.Sprintf("password must have at least %d characters", minPasswordLen), nil)
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return "", 0, fmt.Errorf("hash password: %w", err)
	}

	user, err := as.users.Create(ctx, &workouts.User{
		Username:      req.Username,
		PasswordHash:  hash,
		PreferredName: req.PreferredName,
		Email:         req.Email,
	})
	if err != nil {
		return "", 0, err
	}

	token, err := as.openSession(ctx, user.ID, createdAt)
	if err != nil {
		return "", 0, err
	}
	return token, user.ID, nil
}

func (as *Service) openSession(ctx context.Context, userID workouts.UserID, createdAt time.Time) (string, error) {
	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	cmdSet := as.redisClient.Set(ctx, sessionKey, sessionValue(userID, createdAt), as.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, token)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the user owning the session token.
func (as *Service) Resolve(ctx context.Context, token string) (workouts.UserID, error) {
	if token == "" {
		return 0, ErrSessionNotFound
	}

	cmd := as.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	userID, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return 0, err
	}
	if time.Since(createdAt) > as.ttl {
		return 0, ErrSessionExpired
	}

	return userID, nil
}

// Logout reports whether the token belonged to a live session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	cmdDel := as.redisClient.Del(ctx, sessionKeyPrefix+token)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, token)
	if err := cmdSRem.Err(); err != nil {
		return false, err
	}

	return cmdDel.Val() > 0, nil
}

// ScanAndClean drops tokens from the sessions set whose session is gone
// or older than the TTL.
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		cmd := as.redisClient.Get(ctx, sessionKeyPrefix+token)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, err := parseSessionValue(cmd.Val())
		if err != nil || time.Since(createdAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
	}
	log.Debugf("auth service, scan and clean removed %d sessions", len(toRemove))
}
