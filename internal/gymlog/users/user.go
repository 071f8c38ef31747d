package users

import (
	"errors"
	"regexp"
	"time"

	"github.com/2beens/gymlog/internal/auth"
)

const DefaultAvatarColor = "#3b82f6"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with that name already exists")

	avatarColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	AvatarColor  string    `json:"avatar_color"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

func ValidRole(role string) bool {
	return role == auth.RoleOwner || role == auth.RoleUser
}

func ValidAvatarColor(color string) bool {
	return avatarColorRegex.MatchString(color)
}
