package analytics

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analytics_test

type analyzer interface {
	Summary(ctx context.Context, userID int) (*Summary, error)
	CategoryProgress(ctx context.Context, userID int) (map[string]CategoryReport, error)
	Chart(ctx context.Context, userID, days int) ([]ChartPoint, error)
	GymStats(ctx context.Context) (*GymStats, error)
	UsersStats(ctx context.Context) ([]UserStats, error)
}

type Handler struct {
	analyzer analyzer
}

func NewHandler(analyzer analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.summary")
	defer span.End()

	userID, ok := queryUser(ctx, w, r)
	if !ok {
		return
	}

	summary, err := handler.analyzer.Summary(ctx, userID)
	if err != nil {
		log.Errorf("analytics summary for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to fetch analytics", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

// HandleProgress returns the per-category progress. With ?category= only that category
// is returned, or null when it was never trained.
func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.progress")
	defer span.End()

	category := r.URL.Query().Get("category")
	if category != "" {
		normalized, ok := exercises.NormalizeCategory(category)
		if !ok {
			pkg.WriteJSONError(w, exercises.ErrInvalidCategory.Error(), http.StatusBadRequest)
			return
		}
		category = normalized
	}

	userID, ok := queryUser(ctx, w, r)
	if !ok {
		return
	}

	reports, err := handler.analyzer.CategoryProgress(ctx, userID)
	if err != nil {
		log.Errorf("analytics progress for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to fetch analytics", http.StatusInternalServerError)
		return
	}

	if category == "" {
		pkg.WriteJSON(w, reports, http.StatusOK)
		return
	}
	if report, ok := reports[category]; ok {
		pkg.WriteJSON(w, report, http.StatusOK)
		return
	}
	pkg.WriteJSON(w, nil, http.StatusOK)
}

func (handler *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.chart")
	defer span.End()

	days, err := pkg.ParseOptionalInt(r.URL.Query().Get("days"))
	if err != nil {
		pkg.WriteJSONError(w, "error, days NaN", http.StatusBadRequest)
		return
	}
	if days == 0 {
		days = 7
	}
	if days != 7 && days != 30 {
		pkg.WriteJSONError(w, "days must be 7 or 30", http.StatusBadRequest)
		return
	}

	userID, ok := queryUser(ctx, w, r)
	if !ok {
		return
	}

	chart, err := handler.analyzer.Chart(ctx, userID, days)
	if err != nil {
		log.Errorf("analytics chart for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "failed to fetch analytics", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, chart, http.StatusOK)
}

func (handler *Handler) HandleGymStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.gym_stats")
	defer span.End()

	stats, err := handler.analyzer.GymStats(ctx)
	if err != nil {
		log.Errorf("gym stats: %s", err)
		pkg.WriteJSONError(w, "failed to fetch gym stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
}

func (handler *Handler) HandleUsersStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.users_stats")
	defer span.End()

	stats, err := handler.analyzer.UsersStats(ctx)
	if err != nil {
		log.Errorf("users stats: %s", err)
		pkg.WriteJSONError(w, "failed to fetch users stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, stats, http.StatusOK)
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
