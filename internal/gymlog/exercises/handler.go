package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exerciseCatalogue interface {
	ListVisible(ctx context.Context, userID int) ([]Exercise, error)
	ListAll(ctx context.Context) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Update(ctx context.Context, exercise Exercise) error
	Delete(ctx context.Context, id int) error
}

const (
	defaultTargetSets = 3
	defaultTargetReps = 10
)

// ExerciseRequest carries the editable fields; nil targets keep defaults on add and current values on update.
type ExerciseRequest struct {
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	TargetSets       *int     `json:"target_sets"`
	TargetReps       *int     `json:"target_reps"`
	TargetWeight     *float64 `json:"target_weight"`
	GifURL           *string  `json:"gif_url"`
	CreatedForUserID *int     `json:"created_for_user_id"`
}

type ClassifyResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Asset    string `json:"asset"`
	Matched  bool   `json:"matched"`
}

type DeleteExerciseResponse struct {
	DeletedID int `json:"deleted_id"`
}

type Handler struct {
	catalogue  exerciseCatalogue
	classifier Classifier
}

func NewHandler(catalogue exerciseCatalogue, classifier Classifier) *Handler {
	return &Handler{
		catalogue:  catalogue,
		classifier: classifier,
	}
}

// HandleList returns the exercises visible to the target user. An owner without
// user_id gets the whole catalogue.
func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	requestedUserID, err := pkg.ParseOptionalInt(r.URL.Query().Get("user_id"))
	if err != nil {
		pkg.WriteJSONError(w, "error, user_id NaN", http.StatusBadRequest)
		return
	}

	category := r.URL.Query().Get("category")
	if category != "" {
		var ok bool
		if category, ok = NormalizeCategory(category); !ok {
			pkg.WriteJSONError(w, ErrInvalidCategory.Error(), http.StatusBadRequest)
			return
		}
	}

	var exercises []Exercise
	session, _ := auth.FromContext(ctx)
	if requestedUserID == 0 && session.IsOwner() {
		exercises, err = handler.catalogue.ListAll(ctx)
	} else {
		var userID int
		userID, err = auth.TargetUserID(ctx, requestedUserID)
		if err != nil {
			pkg.WriteJSONError(w, err.Error(), auth.ErrorStatus(err))
			return
		}
		exercises, err = handler.catalogue.ListVisible(ctx, userID)
	}
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.WriteJSONError(w, "failed to list exercises", http.StatusInternalServerError)
		return
	}

	filtered := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if category == "" || e.Category == category {
			filtered = append(filtered, e)
		}
	}

	pkg.WriteJSON(w, filtered, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	exercise, err := handler.catalogue.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("get exercise %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to get exercise", http.StatusInternalServerError)
		return
	}

	// exercises scoped to another user are invisible to non-owners
	session, _ := auth.FromContext(ctx)
	if !exercise.IsGlobal() && !session.IsOwner() && (session == nil || *exercise.CreatedForUserID != session.UserID) {
		pkg.WriteJSONError(w, ErrExerciseNotFound.Error(), http.StatusNotFound)
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	req, ok := decodeExerciseRequest(w, r)
	if !ok {
		return
	}

	exercise := Exercise{
		Name:             strings.TrimSpace(req.Name),
		Category:         req.Category,
		TargetSets:       defaultTargetSets,
		TargetReps:       defaultTargetReps,
		CreatedForUserID: req.CreatedForUserID,
	}
	applyExerciseRequest(&exercise, req)

	// no category or image given: fall back to the name classifier
	if exercise.Category == "" || exercise.GifURL == "" {
		if category, asset, matched := handler.classifier.Classify(exercise.Name); matched {
			if exercise.Category == "" {
				exercise.Category = category
			}
			if exercise.GifURL == "" {
				exercise.GifURL = asset
			}
		}
	}

	if err := exercise.Validate(); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := handler.catalogue.Add(ctx, exercise)
	if err != nil {
		if errors.Is(err, ErrUnknownOwner) || errors.Is(err, ErrInvalidExercise) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add exercise %s: %s", exercise.Name, err)
		pkg.WriteJSONError(w, "failed to add exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %d [%s/%s]", added.ID, added.Category, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	req, ok := decodeExerciseRequest(w, r)
	if !ok {
		return
	}

	exercise, err := handler.catalogue.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("update exercise, get %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to update exercise", http.StatusInternalServerError)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		exercise.Name = name
	}
	if req.Category != "" {
		exercise.Category = req.Category
	}
	if req.CreatedForUserID != nil {
		// zero turns the exercise back into a global one
		if *req.CreatedForUserID <= 0 {
			exercise.CreatedForUserID = nil
		} else {
			exercise.CreatedForUserID = req.CreatedForUserID
		}
	}
	applyExerciseRequest(exercise, req)

	if err := exercise.Validate(); err != nil {
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.catalogue.Update(ctx, *exercise); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrUnknownOwner), errors.Is(err, ErrInvalidExercise):
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("update exercise %d: %s", id, err)
			pkg.WriteJSONError(w, "failed to update exercise", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.catalogue.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			pkg.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("delete exercise %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise %d deleted", id)
	pkg.WriteJSON(w, DeleteExerciseResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.classify")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		pkg.WriteJSONError(w, "error, name empty", http.StatusBadRequest)
		return
	}

	category, asset, matched := handler.classifier.Classify(name)
	pkg.WriteJSON(w, ClassifyResponse{
		Name:     name,
		Category: category,
		Asset:    asset,
		Matched:  matched,
	}, http.StatusOK)
}

func (handler *Handler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.assets")
	defer span.End()

	category, ok := NormalizeCategory(r.URL.Query().Get("category"))
	if !ok {
		pkg.WriteJSONError(w, ErrInvalidCategory.Error(), http.StatusBadRequest)
		return
	}

	assets := handler.classifier.AssetsByCategory(category)
	if assets == nil {
		assets = []string{}
	}
	pkg.WriteJSON(w, assets, http.StatusOK)
}

func decodeExerciseRequest(w http.ResponseWriter, r *http.Request) (ExerciseRequest, bool) {
	var req ExerciseRequest
	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("exercise request, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid exercise payload", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func applyExerciseRequest(exercise *Exercise, req ExerciseRequest) {
	if req.TargetSets != nil {
		exercise.TargetSets = *req.TargetSets
	}
	if req.TargetReps != nil {
		exercise.TargetReps = *req.TargetReps
	}
	if req.TargetWeight != nil {
		exercise.TargetWeight = *req.TargetWeight
	}
	if req.GifURL != nil {
		exercise.GifURL = strings.TrimSpace(*req.GifURL)
	}
}
