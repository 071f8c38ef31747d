package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=login_mocks_test.go -package=users_test

type sessionStore interface {
	Login(ctx context.Context, userID int, role string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LoginHandler struct {
	repo     usersRepo
	sessions sessionStore
}

func NewLoginHandler(repo usersRepo, sessions sessionStore) *LoginHandler {
	return &LoginHandler{
		repo:     repo,
		sessions: sessions,
	}
}

func (handler *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq LoginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Tracef("login, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Tracef("login failed, parse form error: %s", err)
			pkg.WriteJSONError(w, "parse form error", http.StatusBadRequest)
			return
		}
		loginReq = LoginRequest{
			Name:     r.Form.Get("name"),
			Password: r.Form.Get("password"),
		}
	}

	loginReq.Name = strings.TrimSpace(loginReq.Name)
	if loginReq.Name == "" {
		pkg.WriteJSONError(w, "error, name empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		pkg.WriteJSONError(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByName(ctx, loginReq.Name)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Tracef("[name] failed login attempt for user: %s", loginReq.Name)
			pkg.WriteJSONError(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login, get user %s: %s", loginReq.Name, err)
		pkg.WriteJSONError(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", loginReq.Name)
		pkg.WriteJSONError(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, user.Role, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		pkg.WriteJSONError(w, "generate token error", http.StatusInternalServerError)
		return
	}

	user.PasswordHash = ""
	log.Debugf("user %d [%s] logged in", user.ID, user.Name)
	pkg.WriteJSON(w, LoginResponse{Token: token, User: *user}, http.StatusOK)
}

func (handler *LoginHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(auth.TokenHeader)
	if authToken == "" {
		pkg.WriteJSONError(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout for [%s] failed: %s", authToken, err)
		pkg.WriteJSONError(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		pkg.WriteJSONError(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"success":true}`)
}

// HandleMe returns the logged in user.
func (handler *LoginHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.me")
	defer span.End()

	session, ok := auth.FromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("get me %d: %s", session.UserID, err)
		pkg.WriteJSONError(w, "failed to get user", http.StatusInternalServerError)
		return
	}

	user.PasswordHash = ""
	pkg.WriteJSON(w, user, http.StatusOK)
}
