package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// Session returns the session behind token, or nil if the token is unknown or expired.
func (lc *LoginChecker) Session(ctx context.Context, token string) (*Session, error) {
	val, err := lc.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session, err := decodeSession(token, val)
	if err != nil {
		return nil, err
	}

	if time.Since(session.CreatedAt) > lc.ttl {
		return nil, nil
	}

	return session, nil
}
