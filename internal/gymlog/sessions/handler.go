package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsService interface {
	DayStatus(ctx context.Context, userID, dayNumber int) (*DayStatus, error)
	LogExercise(ctx context.Context, userID, dayNumber, exerciseID int, completed bool) (*LogResult, error)
	History(ctx context.Context, userID, dayNumber, limit int) ([]Session, error)
}

type LogExerciseRequest struct {
	UserID     int  `json:"user_id"`
	DayNumber  int  `json:"day_number"`
	ExerciseID int  `json:"exercise_id"`
	Completed  bool `json:"completed"`
}

type Handler struct {
	service sessionsService
}

func NewHandler(service sessionsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, dayNumber, ok := parseUserAndDay(w, r)
	if !ok {
		return
	}

	status, err := handler.service.DayStatus(ctx, userID, dayNumber)
	if err != nil {
		log.Errorf("day status for user %d day %d: %s", userID, dayNumber, err)
		pkg.WriteJSONError(w, "failed to get workout session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, status, http.StatusOK)
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log session exercise, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid workout session payload", http.StatusBadRequest)
		return
	}
	if req.ExerciseID <= 0 {
		pkg.WriteJSONError(w, "exercise_id is required", http.StatusBadRequest)
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

	result, err := handler.service.LogExercise(ctx, userID, req.DayNumber, req.ExerciseID, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionClosed):
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnknownUser):
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
		default:
			log.Errorf("log exercise %d for user %d: %s", req.ExerciseID, userID, err)
			pkg.WriteJSONError(w, "failed to update workout session", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.history")
	defer span.End()

	userID, dayNumber, ok := parseUserAndDay(w, r)
	if !ok {
		return
	}
	limit, err := pkg.ParseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		pkg.WriteJSONError(w, "error, limit NaN", http.StatusBadRequest)
		return
	}

	sessions, err := handler.service.History(ctx, userID, dayNumber, limit)
	if err != nil {
		log.Errorf("session history for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get workout sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, sessions, http.StatusOK)
}

func parseUserAndDay(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	requestedUserID, err := pkg.ParseOptionalInt(r.URL.Query().Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return 0, 0, false
	}
	dayNumber, err := pkg.ParseOptionalInt(r.URL.Query().Get("day_number"))
	if err != nil || dayNumber < 0 {
		pkg.WriteJSONError(w, "error, day_number NaN", http.StatusBadRequest)
		return 0, 0, false
	}

	userID, err := auth.TargetUserID(r.Context(), requestedUserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return 0, 0, false
	}
	return userID, dayNumber, true
}
