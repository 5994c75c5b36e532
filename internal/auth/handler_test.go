package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nicklany01/workout-scheduler/internal/workouts"
)

func TestHandler_Login(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()
	users := NewMockuserStore(gomock.NewController(t))
	service := NewAuthService(users, time.Hour, rdb)
	service.RandStringFunc = func(int) (string, error) { return "tok", nil }
	handler := NewHandler(service)
	now := time.Unix(1700000000, 0)
	handler.now = func() time.Time { return now }

	users.EXPECT().GetByUsername(gomock.Any(), testUsername).Return(testUser, nil).Times(2)
	mock.ExpectSet(sessionKeyPrefix+"tok", "7:1700000000", time.Hour).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, "tok").SetVal(1)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/a/login", strings.NewReader(`{"username":"testuser","password":"testpass"}`))
	handler.HandleLogin(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"token":"tok","userId":7}`, rr.Body.String())

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/login", strings.NewReader(`{"username":"testuser","password":"nope"}`))
	handler.HandleLogin(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/login", strings.NewReader(`{"username":""}`))
	handler.HandleLogin(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/login", strings.NewReader(`not json`))
	handler.HandleLogin(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Signup(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()
	users := NewMockuserStore(gomock.NewController(t))
	service := NewAuthService(users, time.Hour, rdb)
	service.RandStringFunc = func(int) (string, error) { return "tok", nil }
	handler := NewHandler(service)
	now := time.Unix(1700000000, 0)
	handler.now = func() time.Time { return now }

	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&workouts.User{ID: 9, Username: "newbie"}, nil)
	mock.ExpectSet(sessionKeyPrefix+"tok", "9:1700000000", time.Hour).SetVal("OK")
	mock.ExpectSAdd(tokensSetKey, "tok").SetVal(1)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/a/signup", strings.NewReader(`{"username":"newbie","password":"longenough"}`))
	handler.HandleSignup(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"token":"tok","userId":9}`, rr.Body.String())

	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, workouts.Conflict("user [newbie] already exists"))
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/signup", strings.NewReader(`{"username":"newbie","password":"longenough"}`))
	handler.HandleSignup(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)

	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, workouts.TransactionFailure("create user", errors.New("conn reset")))
	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/signup", strings.NewReader(`{"username":"other","password":"longenough"}`))
	handler.HandleSignup(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/signup", strings.NewReader(`{"username":"newbie","password":"short"}`))
	handler.HandleSignup(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/a/signup", strings.NewReader(`not json`))
	handler.HandleSignup(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Logout(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer rdb.Close()
	handler := NewHandler(NewAuthService(nil, time.Hour, rdb))

	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, httptest.NewRequest("GET", "/a/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	mock.ExpectDel(sessionKeyPrefix + "tok").SetVal(1)
	mock.ExpectSRem(tokensSetKey, "tok").SetVal(1)
	rr = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/a/logout", nil)
	req.Header.Set("Authorization", "Bearer tok")
	handler.HandleLogout(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "logged-out", rr.Body.String())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/logs", nil)
	assert.Empty(t, TokenFromRequest(req))

	req.Header.Set(SessionTokenHeader, "header-token")
	assert.Equal(t, "header-token", TokenFromRequest(req))

	req.Header.Set("Authorization", "Bearer  bearer-token ")
	assert.Equal(t, "bearer-token", TokenFromRequest(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "header-token", TokenFromRequest(req))
}
