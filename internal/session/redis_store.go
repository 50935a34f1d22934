package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eNoodles/user-service/internal/common/constants"
)

// swapScript installs the new active session and drops the superseded one
// server-side, so both key families move in a single atomic step.
// KEYS[1] is the userSessions:<userID> slot; ARGV[1] the new session id,
// ARGV[2] the user id, ARGV[3] the forward key prefix, ARGV[4] the ttl in ms.
var swapScript = goredis.NewScript(`
local old = redis.call('GET', KEYS[1])
if old then
  redis.call('DEL', ARGV[3] .. old)
end
redis.call('SET', ARGV[3] .. ARGV[1], ARGV[2], 'PX', ARGV[4])
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[4])
if old then
  return old
end
return ''
`)

var removeScript = goredis.NewScript(`
local sid = redis.call('GET', KEYS[1])
if sid then
  redis.call('DEL', ARGV[1] .. sid)
end
redis.call('DEL', KEYS[1])
return sid or ''
`)

// RedisStore backs the directory with an expiring Redis keyspace for
// multi-instance deployments. TTLs are native, so no sweeping is needed.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	val, err := r.client.Get(ctx, constants.SessionKeyPrefix+sessionID).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Active(ctx context.Context, userID string) (string, error) {
	val, err := r.client.Get(ctx, constants.ActiveSessionKeyPrefix+userID).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStore) Swap(ctx context.Context, userID, sessionID string, ttl time.Duration) (string, error) {
	old, err := swapScript.Run(
		ctx,
		r.client,
		[]string{constants.ActiveSessionKeyPrefix + userID},
		sessionID,
		userID,
		constants.SessionKeyPrefix,
		strconv.FormatInt(ttl.Milliseconds(), 10),
	).Text()
	if err != nil {
		return "", err
	}
	return old, nil
}

func (r *RedisStore) Remove(ctx context.Context, userID string) error {
	return removeScript.Run(
		ctx,
		r.client,
		[]string{constants.ActiveSessionKeyPrefix + userID},
		constants.SessionKeyPrefix,
	).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
