package search

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=search_mocks_test.go -package=search_test

type searcher interface {
	Search(ctx context.Context, muscle, name string) ([]Result, error)
}

type Handler struct {
	searcher searcher
}

func NewHandler(searcher searcher) *Handler {
	return &Handler{
		searcher: searcher,
	}
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.search")
	defer span.End()

	muscle := strings.TrimSpace(r.URL.Query().Get("muscle"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if muscle == "" && name == "" {
		pkg.WriteJSONError(w, "muscle or name is required", http.StatusBadRequest)
		return
	}

	results, err := handler.searcher.Search(ctx, muscle, name)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			pkg.WriteJSONError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		log.Errorf("exercise search [%s/%s]: %s", muscle, name, err)
		pkg.WriteJSONError(w, "failed to fetch exercises", http.StatusBadGateway)
		return
	}

	pkg.WriteJSON(w, results, http.StatusOK)
}
