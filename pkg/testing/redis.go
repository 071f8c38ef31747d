// Package testing holds helpers shared by the integration tests that need live backends.
package testing

import (
	"cmp"
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

const redisTestTimeout = 10 * time.Second

// GetRedisClientAndCtx dials REDIS_HOST (localhost when unset) with GYMLOG_REDIS_PASS and
// fails the test right away when the server does not answer a ping. Both the client and
// the context are released when the test ends.
func GetRedisClientAndCtx(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	host := cmp.Or(os.Getenv("REDIS_HOST"), "localhost")
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, "6379"),
		Password: os.Getenv("GYMLOG_REDIS_PASS"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTestTimeout)
	t.Cleanup(func() {
		cancel()
		_ = rdb.Close()
	})

	require.NoError(t, rdb.Ping(ctx).Err(), "redis at [%s] not reachable", host)
	return ctx, rdb
}
