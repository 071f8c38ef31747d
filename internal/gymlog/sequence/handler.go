package sequence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sequence_mocks_test.go -package=sequence_test

type sequenceRepo interface {
	GetSequenceForUser(ctx context.Context, userID, dayNumber int) ([]Entry, error)
	AddEntry(ctx context.Context, userID, exerciseID, dayNumber int) (*Entry, error)
	RemoveEntry(ctx context.Context, id int) (*Entry, error)
	Reorder(ctx context.Context, userID, dayNumber int, entryIDs []int) error
}

type AddEntryRequest struct {
	UserID     int `json:"user_id"`
	ExerciseID int `json:"exercise_id"`
	DayNumber  int `json:"day_number"`
}

type ReorderRequest struct {
	UserID    int   `json:"user_id"`
	DayNumber int   `json:"day_number"`
	EntryIDs  []int `json:"entry_ids"`
}

type SequenceResponse struct {
	UserID int   `json:"user_id"`
	MaxDay int   `json:"max_day"`
	Days   []Day `json:"days"`
}

type Handler struct {
	repo sequenceRepo
}

func NewHandler(repo sequenceRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sequence.get")
	defer span.End()

	requestedUserID, err := pkg.ParseOptionalInt(r.URL.Query().Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return
	}
	dayNumber, err := pkg.ParseOptionalInt(r.URL.Query().Get("day_number"))
	if err != nil || dayNumber < 0 {
		pkg.WriteJSONError(w, "error, day_number NaN", http.StatusBadRequest)
		return
	}

	userID, err := auth.TargetUserID(ctx, requestedUserID)
	if err != nil {
		pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
		return
	}

	entries, err := handler.repo.GetSequenceForUser(ctx, userID, dayNumber)
	if err != nil {
		log.Errorf("get sequence for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to get workout sequence", http.StatusInternalServerError)
		return
	}

	days := GroupByDay(entries)
	resp := SequenceResponse{
		UserID: userID,
		Days:   days,
	}
	if len(days) > 0 {
		resp.MaxDay = days[len(days)-1].DayNumber
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sequence.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add sequence entry, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid sequence entry payload", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.ExerciseID <= 0 {
		pkg.WriteJSONError(w, "user_id and exercise_id are required", http.StatusBadRequest)
		return
	}
	if req.DayNumber < 1 {
		pkg.WriteJSONError(w, "day_number must be at least 1", http.StatusBadRequest)
		return
	}

	entry, err := handler.repo.AddEntry(ctx, req.UserID, req.ExerciseID, req.DayNumber)
	if err != nil {
		if errors.Is(err, ErrUnknownReference) || errors.Is(err, ErrSortOrderClash) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add sequence entry %+v: %s", req, err)
		pkg.WriteJSONError(w, "failed to add sequence entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("sequence entry %d added: user %d, day %d, exercise %d", entry.ID, entry.UserID, entry.DayNumber, entry.ExerciseID)
	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (handler *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sequence.remove")
	defer span.End()

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	removed, err := handler.repo.RemoveEntry(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("remove sequence entry %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to remove sequence entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("sequence entry %d removed: user %d, day %d", removed.ID, removed.UserID, removed.DayNumber)
	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

func (handler *Handler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sequence.reorder")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("reorder sequence, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid reorder payload", http.StatusBadRequest)
		return
	}
	if req.UserID <= 0 || req.DayNumber < 1 {
		pkg.WriteJSONError(w, "user_id and day_number are required", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Reorder(ctx, req.UserID, req.DayNumber, req.EntryIDs); err != nil {
		if errors.Is(err, ErrReorderMismatch) || errors.Is(err, ErrSortOrderClash) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("reorder sequence for user %d day %d: %s", req.UserID, req.DayNumber, err)
		pkg.WriteJSONError(w, "failed to reorder sequence", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}
