package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
	"github.com/nicklany01/workout-scheduler/pkg"
)

type LoginResponse struct {
	Token  string          `json:"token"`
	UserID workouts.UserID `json:"userId"`
}

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var creds Credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&creds); err != nil {
		http.Error(w, "invalid login body", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	token, userID, err := h.service.Login(ctx, creds, h.now())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Debugf("login [%s]: invalid credentials", creds.Username)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Errorf("login [%s]: %s", creds.Username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	log.Infof("user %d logged in", userID)
	pkg.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, UserID: userID})
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup")
	defer span.End()

	var req SignupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid signup body", http.StatusBadRequest)
		return
	}

	token, userID, err := h.service.Signup(ctx, req, h.now())
	if err != nil {
		switch workouts.KindOf(err) {
		case workouts.KindInvalidInput:
			http.Error(w, err.Error(), http.StatusBadRequest)
		case workouts.KindConflict:
			log.Debugf("signup [%s]: %s", req.Username, err)
			http.Error(w, "username taken", http.StatusConflict)
		default:
			log.Errorf("signup [%s]: %s", req.Username, err)
			http.Error(w, "signup failed", http.StatusInternalServerError)
		}
		return
	}

	log.Infof("user %d signed up", userID)
	pkg.WriteJSON(w, http.StatusCreated, LoginResponse{Token: token, UserID: userID})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := TokenFromRequest(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := h.service.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
