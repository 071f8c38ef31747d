package progress

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	GetOrCreate(ctx context.Context, userID int) (*Progress, error)
	Advance(ctx context.Context, userID int) (*Progress, error)
	SetDay(ctx context.Context, userID, dayNumber int) (*Progress, error)
	Reset(ctx context.Context, userID int) (*Progress, error)
}

type ProgressRequest struct {
	UserID    int `json:"user_id"`
	DayNumber int `json:"day_number"`
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.get")
	defer span.End()

	requestedUserID, err := pkg.ParseOptionalInt(r.URL.Query().Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return
	}
	userID, err := auth.TargetUserID(ctx, requestedUserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return
	}

	p, err := handler.service.GetOrCreate(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "get progress", userID, err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.advance")
	defer span.End()

	req, ok := decodeProgressRequest(w, r)
	if !ok {
		return
	}
	userID, err := auth.TargetUserID(ctx, req.UserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return
	}

	p, err := handler.service.Advance(ctx, userID)
	if err != nil {
		handler.writeServiceError(w, "advance", userID, err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleSetDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.set_day")
	defer span.End()

	req, ok := decodeProgressRequest(w, r)
	if !ok {
		return
	}
	if req.UserID <= 0 {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	p, err := handler.service.SetDay(ctx, req.UserID, req.DayNumber)
	if err != nil {
		handler.writeServiceError(w, "set day", req.UserID, err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.reset")
	defer span.End()

	req, ok := decodeProgressRequest(w, r)
	if !ok {
		return
	}
	if req.UserID <= 0 {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	p, err := handler.service.Reset(ctx, req.UserID)
	if err != nil {
		handler.writeServiceError(w, "reset", req.UserID, err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, op string, userID int, err error) {
	switch {
	case errors.Is(err, ErrDayOutOfRange):
		pkg.WriteJSONError(w, ErrDayOutOfRange.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrUnknownUser):
		pkg.WriteJSONError(w, ErrUnknownUser.Error(), http.StatusNotFound)
	default:
		log.Errorf("progress %s for user %d: %s", op, userID, err)
		pkg.WriteJSONError(w, "failed to "+op, http.StatusInternalServerError)
	}
}

func decodeProgressRequest(w http.ResponseWriter, r *http.Request) (ProgressRequest, bool) {
	var req ProgressRequest
	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("progress request, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid progress payload", http.StatusBadRequest)
		return req, false
	}
	return req, true
}
