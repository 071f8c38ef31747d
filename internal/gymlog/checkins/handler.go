package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=checkins_test

type checkInsService interface {
	CheckIn(ctx context.Context, userID int) (*CheckIn, bool, error)
	CheckOut(ctx context.Context, userID int) (*CheckOutResult, error)
	Open(ctx context.Context, userID int) (*CheckIn, error)
	List(ctx context.Context, userID int, from, to *time.Time) ([]CheckIn, error)
}

type CheckInRequest struct {
	UserID int `json:"user_id"`
}

type Handler struct {
	service checkInsService
}

func NewHandler(service checkInsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.check_in")
	defer span.End()

	userID, ok := handler.requestUser(ctx, w, r)
	if !ok {
		return
	}

	checkIn, created, err := handler.service.CheckIn(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("check in user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to check in", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	pkg.WriteJSON(w, checkIn, status)
}

func (handler *Handler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.check_out")
	defer span.End()

	userID, ok := handler.requestUser(ctx, w, r)
	if !ok {
		return
	}

	result, err := handler.service.CheckOut(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoOpenCheckIn) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("check out user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to check out", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.open")
	defer span.End()

	userID, ok := queryUser(ctx, w, r)
	if !ok {
		return
	}

	open, err := handler.service.Open(ctx, userID)
	if err != nil {
		log.Errorf("open check-in of user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get check-in", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, open, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.checkins.list")
	defer span.End()

	from, err := pkg.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		pkg.WriteJSONError(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := pkg.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		pkg.WriteJSONError(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	userID, ok := queryUser(ctx, w, r)
	if !ok {
		return
	}

	checkIns, err := handler.service.List(ctx, userID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("list check-ins of user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get check-ins", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, checkIns, http.StatusOK)
}

// requestUser reads the optional {user_id} body; an empty body means the caller.
func (handler *Handler) requestUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Tracef("check-in, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid check-in payload", http.StatusBadRequest)
		return 0, false
	}

	userID, err := auth.TargetUserID(ctx, req.UserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return 0, false
	}
	return userID, true
}

func queryUser(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	requestedUserID, err := pkg.ParseOptionalInt(r.URL.Query().Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return 0, false
	}
	userID, err := auth.TargetUserID(ctx, requestedUserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return 0, false
	}
	return userID, true
}
