package users

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

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int) error
}

type UserRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
}

type DeleteUserResponse struct {
	DeletedID int `json:"deleted_id"`
}

type Handler struct {
	repo         usersRepo
	hashPassword func(string) (string, error)
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo:         repo,
		hashPassword: pkg.HashPassword,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.list")
	defer span.End()

	users, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list users: %s", err)
		pkg.WriteJSONError(w, "failed to list users", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, users, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get user %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new user, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid user payload", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		pkg.WriteJSONError(w, "name and password are required", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = auth.RoleUser
	}
	if req.AvatarColor == "" {
		req.AvatarColor = DefaultAvatarColor
	}
	if msg, ok := validateUserRequest(req); !ok {
		pkg.WriteJSONError(w, msg, http.StatusBadRequest)
		return
	}

	passwordHash, err := handler.hashPassword(req.Password)
	if err != nil {
		log.Errorf("hash password for new user %s: %s", req.Name, err)
		pkg.WriteJSONError(w, "failed to add user", http.StatusInternalServerError)
		return
	}

	added, err := handler.repo.Add(ctx, User{
		Name:         req.Name,
		Role:         req.Role,
		AvatarColor:  req.AvatarColor,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("add user %s: %s", req.Name, err)
		pkg.WriteJSONError(w, "failed to add user", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user added: %d [%s]", added.ID, added.Name)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
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

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update user, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid user payload", http.StatusBadRequest)
		return
	}

	existing, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("update user, get %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if req.Role != "" {
		existing.Role = req.Role
	}
	if req.AvatarColor != "" {
		existing.AvatarColor = req.AvatarColor
	}
	if msg, ok := validateUserRequest(UserRequest{Role: existing.Role, AvatarColor: existing.AvatarColor}); !ok {
		pkg.WriteJSONError(w, msg, http.StatusBadRequest)
		return
	}

	// empty hash keeps the current password
	existing.PasswordHash = ""
	if req.Password != "" {
		existing.PasswordHash, err = handler.hashPassword(req.Password)
		if err != nil {
			log.Errorf("hash password for user %d: %s", id, err)
			pkg.WriteJSONError(w, "failed to update user", http.StatusInternalServerError)
			return
		}
	}

	if err := handler.repo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			pkg.WriteJSONError(w, "user not found", http.StatusNotFound)
		default:
			log.Errorf("update user %d: %s", id, err)
			pkg.WriteJSONError(w, "failed to update user", http.StatusInternalServerError)
		}
		return
	}

	existing.PasswordHash = ""
	pkg.WriteJSON(w, existing, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		pkg.WriteJSONError(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if session, ok := auth.FromContext(ctx); ok && session.UserID == id {
		pkg.WriteJSONError(w, "cannot delete yourself", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete user %d: %s", id, err)
		pkg.WriteJSONError(w, "failed to delete user", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d deleted", id)
	pkg.WriteJSON(w, DeleteUserResponse{DeletedID: id}, http.StatusOK)
}

func validateUserRequest(req UserRequest) (string, bool) {
	if req.Role != "" && !ValidRole(req.Role) {
		return "role must be owner or user", false
	}
	if req.AvatarColor != "" && !ValidAvatarColor(req.AvatarColor) {
		return "avatar_color must be a #rrggbb hex color", false
	}
	return "", true
}
