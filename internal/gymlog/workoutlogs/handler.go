package workoutlogs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workoutlogs_test

type logsService interface {
	List(ctx context.Context, userID int, filter Filter) ([]WorkoutLog, error)
	Get(ctx context.Context, id int) (*WorkoutLog, error)
	Save(ctx context.Context, userID, exerciseID int, date *time.Time, values Values, markComplete bool, dayNumber int) (*SaveResult, error)
	Update(ctx context.Context, id int, values Values) (*WorkoutLog, error)
	Delete(ctx context.Context, id int) error
}

type SaveLogRequest struct {
	UserID       int       `json:"user_id"`
	ExerciseID   int       `json:"exercise_id"`
	ActualSets   *int      `json:"actual_sets"`
	ActualReps   *int      `json:"actual_reps"`
	Weight       float64   `json:"weight"`
	Date         string    `json:"date"`
	SetsData     []SetData `json:"sets_data"`
	MarkComplete bool      `json:"mark_complete"`
	DayNumber    int       `json:"day_number"`
}

type UpdateLogRequest struct {
	ActualSets *int      `json:"actual_sets"`
	ActualReps *int      `json:"actual_reps"`
	Weight     float64   `json:"weight"`
	SetsData   []SetData `json:"sets_data"`
}

type Handler struct {
	service logsService
}

func NewHandler(service logsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlogs.list")
	defer span.End()

	query := r.URL.Query()
	requestedUserID, err := pkg.ParseOptionalInt(query.Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return
	}
	exerciseID, err := pkg.ParseOptionalInt(query.Get("exercise_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, exercise_id NaN", http.StatusBadRequest)
		return
	}
	date, err := pkg.ParseDate(query.Get("date"))
	if err != nil {
		pkg.WriteJSONError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	userID, err := auth.TargetUserID(ctx, requestedUserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return
	}

	logs, err := handler.service.List(ctx, userID, Filter{ExerciseID: exerciseID, Date: date})
	if err != nil {
		log.Errorf("list workout logs for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to fetch workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, logs, http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlogs.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SaveLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save workout log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid workout log payload", http.StatusBadRequest)
		return
	}
	if req.ExerciseID <= 0 {
		pkg.WriteJSONError(w, "user_id and exercise_id are required", http.StatusBadRequest)
		return
	}
	if req.ActualSets == nil || req.ActualReps == nil {
		pkg.WriteJSONError(w, "actual_sets and actual_reps must be numbers", http.StatusBadRequest)
		return
	}
	date, err := pkg.ParseDate(req.Date)
	if err != nil {
		pkg.WriteJSONError(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.DayNumber < 0 {
		pkg.WriteJSONError(w, "day_number must be positive", http.StatusBadRequest)
		return
	}

	userID, err := auth.TargetUserID(ctx, req.UserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return
	}

	values := Values{
		ActualSets: *req.ActualSets,
		ActualReps: *req.ActualReps,
		Weight:     req.Weight,
		SetsData:   req.SetsData,
	}
	result, err := handler.service.Save(ctx, userID, req.ExerciseID, date, values, req.MarkComplete, req.DayNumber)
	if err != nil {
		handler.writeServiceError(w, "save workout log", err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	pkg.WriteJSON(w, result, status)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlogs.update")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}
	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UpdateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update workout log, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid workout log payload", http.StatusBadRequest)
		return
	}
	if req.ActualSets == nil || req.ActualReps == nil {
		pkg.WriteJSONError(w, "actual_sets and actual_reps must be numbers", http.StatusBadRequest)
		return
	}

	if !handler.authorizeLog(ctx, w, id) {
		return
	}

	updated, err := handler.service.Update(ctx, id, Values{
		ActualSets: *req.ActualSets,
		ActualReps: *req.ActualReps,
		Weight:     req.Weight,
		SetsData:   req.SetsData,
	})
	if err != nil {
		handler.writeServiceError(w, "update workout log", err)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlogs.delete")
	defer span.End()

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		pkg.WriteJSONError(w, "id is required", http.StatusBadRequest)
		return
	}

	if !handler.authorizeLog(ctx, w, id) {
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		handler.writeServiceError(w, "delete workout log", err)
		return
	}

	log.Debugf("workout log %d deleted", id)
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

// authorizeLog lets owners touch any log and users only their own.
func (handler *Handler) authorizeLog(ctx context.Context, w http.ResponseWriter, id int) bool {
	wl, err := handler.service.Get(ctx, id)
	if err != nil {
		handler.writeServiceError(w, "get workout log", err)
		return false
	}
	if _, err := auth.TargetUserID(ctx, wl.UserID); err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return false
	}
	return true
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrLogNotFound):
		pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidLog), errors.Is(err, ErrUnknownReference):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", op, err)
		pkg.WriteJSONError(w, "failed to "+op, http.StatusInternalServerError)
	}
}
