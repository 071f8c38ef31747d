package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	RoleOwner = "owner"
	RoleUser  = "user"
)

var (
	ErrNoSession      = errors.New("no session in context")
	ErrForbiddenActor = errors.New("not allowed to act for another user")
)

// Session is the logged-in identity every request carries after the auth middleware.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsOwner() bool {
	return s != nil && s.Role == RoleOwner
}

// value stored in redis: <user id>|<role>|<created at unix>
func (s *Session) encode() string {
	return fmt.Sprintf("%d|%s|%d", s.UserID, s.Role, s.CreatedAt.Unix())
}

func decodeSession(token, val string) (*Session, error) {
	parts := strings.Split(val, "|")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed session value: %q", val)
	}
	userID, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("session created at: %w", err)
	}
	return &Session{
		Token:     token,
		UserID:    userID,
		Role:      parts[1],
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

type sessionCtxKey struct{}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return s, ok && s != nil
}

// TargetUserID resolves whose data a request works on. Owners may act for any user
// (requested > 0), everyone else always acts for themselves.
func TargetUserID(ctx context.Context, requested int) (int, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return 0, ErrNoSession
	}
	if requested <= 0 || requested == s.UserID {
		return s.UserID, nil
	}
	if !s.IsOwner() {
		return 0, ErrForbiddenActor
	}
	return requested, nil
}

// ErrorStatus maps TargetUserID errors to the HTTP status a handler should answer with.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbiddenActor):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// TokenHeader carries the session token on every authenticated request.
const TokenHeader = "X-GYMLOG-TOKEN"
