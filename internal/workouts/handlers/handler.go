// Package handlers exposes the workouts engine and projector over HTTP.
// Every route expects the authenticated user in the request context.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nicklany01/workout-scheduler/internal/auth"
	"github.com/nicklany01/workout-scheduler/internal/telemetry/tracing"
	"github.com/nicklany01/workout-scheduler/internal/workouts"
	"github.com/nicklany01/workout-scheduler/internal/workouts/catalogue"
	"github.com/nicklany01/workout-scheduler/internal/workouts/engine"
	"github.com/nicklany01/workout-scheduler/internal/workouts/projector"
	"github.com/nicklany01/workout-scheduler/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=handlers_test

type workoutsEngine interface {
	SubmitPlan(ctx context.Context, userID workouts.UserID, start, end workouts.CalendarDate, plan map[workouts.CalendarDate][]workouts.ExerciseLog) error
	SubmitCatalogue(ctx context.Context, userID workouts.UserID, desired map[string][]workouts.Muscle) (catalogue.ReconcileResult, error)
	RecordSession(ctx context.Context, userID workouts.UserID, date workouts.CalendarDate, entries []workouts.ExerciseLog) (engine.SessionResult, error)
}

type viewProjector interface {
	Exercises(ctx context.Context, userID workouts.UserID) (map[string]projector.ExerciseView, error)
	Logs(ctx context.Context, userID workouts.UserID, since workouts.CalendarDate) (map[workouts.CalendarDate]projector.DayView, error)
}

type logGetter interface {
	Get(ctx context.Context, userID workouts.UserID, date workouts.CalendarDate) (*workouts.Log, error)
}

type userGetter interface {
	Get(ctx context.Context, userID workouts.UserID) (*workouts.User, error)
}

const maxBodyBytes = 1 << 20

type CatalogueRequest struct {
	Exercises map[string]struct {
		Muscles []workouts.Muscle `json:"muscles"`
	} `json:"exercises"`
}

type PlanRequest struct {
	StartDate workouts.CalendarDate                       `json:"startDate"`
	EndDate   workouts.CalendarDate                       `json:"endDate"`
	Logs      map[workouts.CalendarDate]projector.DayView `json:"logs"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Handler struct {
	engine    workoutsEngine
	projector viewProjector
	logs      logGetter
	users     userGetter
}

func NewHandler(
	engine workoutsEngine,
	projector viewProjector,
	logs logGetter,
	users userGetter,
) *Handler {
	return &Handler{
		engine:    engine,
		projector: projector,
		logs:      logs,
		users:     users,
	}
}

// SetupRoutes registers the read routes on r, and the write routes on r
// wrapped with writeLimit.
func (h *Handler) SetupRoutes(r *mux.Router, writeLimit mux.MiddlewareFunc) {
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/exercises", h.HandleListExercises).Methods("GET", "OPTIONS").Name("list-exercises")
	api.HandleFunc("/logs", h.HandleListLogs).Methods("GET", "OPTIONS").Name("list-logs")
	api.HandleFunc("/logs/{date}", h.HandleGetLog).Methods("GET", "OPTIONS").Name("get-log")
	api.HandleFunc("/user", h.HandleGetUser).Methods("GET", "OPTIONS").Name("get-user")

	writes := api.NewRoute().Subrouter()
	if writeLimit != nil {
		writes.Use(writeLimit)
	}
	writes.HandleFunc("/exercises", h.HandleSaveCatalogue).Methods("POST", "OPTIONS").Name("save-catalogue")
	writes.HandleFunc("/logs", h.HandleReplacePlan).Methods("POST", "OPTIONS").Name("replace-plan")
	writes.HandleFunc("/logs/{date}", h.HandleUpdateSession).Methods("PUT", "OPTIONS").Name("update-session")
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listExercises")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := h.projector.Exercises(ctx, userID)
	if err != nil {
		writeError(w, fmt.Sprintf("list exercises, user %d", userID), err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) HandleSaveCatalogue(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.saveCatalogue")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CatalogueRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, "save catalogue", err)
		return
	}
	if req.Exercises == nil {
		writeError(w, "save catalogue", workouts.InvalidInput("exercises required", nil))
		return
	}

	desired := make(map[string][]workouts.Muscle, len(req.Exercises))
	for name, ex := range req.Exercises {
		desired[name] = ex.Muscles
	}
	span.SetAttributes(attribute.Int("exercises.count", len(desired)))

	result, err := h.engine.SubmitCatalogue(ctx, userID, desired)
	if err != nil {
		writeError(w, fmt.Sprintf("save catalogue, user %d", userID), err)
		return
	}

	log.Debugf("catalogue saved, user %d: inserted %v, deleted %v", userID, result.Inserted, result.Deleted)
	pkg.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listLogs")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var since workouts.CalendarDate
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		if since, err = workouts.ParseDate(sinceStr); err != nil {
			writeError(w, "list logs", err)
			return
		}
	}

	views, err := h.projector.Logs(ctx, userID, since)
	if err != nil {
		writeError(w, fmt.Sprintf("list logs, user %d", userID), err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getLog")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	date, err := workouts.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, "get log", err)
		return
	}

	l, err := h.logs.Get(ctx, userID, date)
	if err != nil {
		writeError(w, fmt.Sprintf("get log [%s], user %d", date, userID), err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, projector.DayView{ExerciseLogs: l.Entries})
}

func (h *Handler) HandleReplacePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.replacePlan")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req PlanRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, "replace plan", err)
		return
	}

	plan := make(map[workouts.CalendarDate][]workouts.ExerciseLog, len(req.Logs))
	for date, day := range req.Logs {
		entries := day.ExerciseLogs
		if entries == nil {
			entries = []workouts.ExerciseLog{}
		}
		plan[date] = entries
	}
	span.SetAttributes(
		attribute.String("start", req.StartDate.String()),
		attribute.String("end", req.EndDate.String()),
		attribute.Int("logs.count", len(plan)),
	)

	if err := h.engine.SubmitPlan(ctx, userID, req.StartDate, req.EndDate, plan); err != nil {
		writeError(w, fmt.Sprintf("replace plan [%s, %s], user %d", req.StartDate, req.EndDate, userID), err)
		return
	}

	log.Debugf("plan replaced, user %d: [%s, %s] with %d logs", userID, req.StartDate, req.EndDate, len(plan))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.updateSession")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	date, err := workouts.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		writeError(w, "update session", err)
		return
	}

	var req projector.DayView
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, "update session", err)
		return
	}

	result, err := h.engine.RecordSession(ctx, userID, date, req.ExerciseLogs)
	if err != nil {
		writeError(w, fmt.Sprintf("update session [%s], user %d", date, userID), err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.getUser")
	defer span.End()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		writeError(w, fmt.Sprintf("get user %d", userID), err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, user)
}

func requireUser(w http.ResponseWriter, r *http.Request) (workouts.UserID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// decodeBody decodes a JSON body into dst. Classified errors raised while
// decoding (an unknown muscle, a malformed date key) are kept as they are.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, pkg.ContentType.JSON) {
		return workouts.InvalidInput(fmt.Sprintf("invalid content type [%s]", ct), nil)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if workouts.KindOf(err) != "" {
			return err
		}
		return workouts.InvalidInput("malformed request body", err)
	}
	return nil
}

func statusOf(kind workouts.ErrorKind) int {
	switch kind {
	case workouts.KindInvalidInput, workouts.KindInvalidReference:
		return http.StatusBadRequest
	case workouts.KindConflict:
		return http.StatusConflict
	case workouts.KindNotFound:
		return http.StatusNotFound
	case workouts.KindTransactionFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the structured error body. Causes of store
// failures are logged, never sent.
func writeError(w http.ResponseWriter, op string, err error) {
	var wErr *workouts.Error
	if !errors.As(err, &wErr) {
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorBody{Kind: "internal", Message: "internal error"},
		})
		return
	}

	status := statusOf(wErr.Kind)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}

	message := wErr.Message
	if message == "" {
		message = string(wErr.Kind)
	}
	pkg.WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{Kind: string(wErr.Kind), Message: message},
	})
}
