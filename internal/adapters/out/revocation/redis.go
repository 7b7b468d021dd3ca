package revocation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "revoked:"

// revokeScript sets KEYS[1] with a PX of ARGV[1] milliseconds, or without expiry when
// ARGV[1] is 0. An entry already kept longer (or forever) is left untouched, and the
// read and write run atomically on the server.
var revokeScript = redis.NewScript(`
local current = redis.call('PTTL', KEYS[1])
if current == -1 then
	return 0
end
local ttl = tonumber(ARGV[1])
if ttl == 0 then
	redis.call('SET', KEYS[1], '1')
	return 1
end
if current >= ttl then
	return 0
end
redis.call('SET', KEYS[1], '1', 'PX', ARGV[1])
return 1
`)

// RedisStore shares revocations between instances. Entries carry a TTL equal to the
// token's remaining lifetime, so redis expires them by itself.
type RedisStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return NewRedisStoreWithClock(client, time.Now)
}

func NewRedisStoreWithClock(client redis.UniversalClient, now func() time.Time) *RedisStore {
	return &RedisStore{client: client, now: now}
}

// Revoke stores the digest until the token's expiry. Tokens that already expired are
// skipped; a zero until keeps the entry without TTL.
func (s *RedisStore) Revoke(ctx context.Context, token string, until time.Time) error {
	var ttl time.Duration
	if !until.IsZero() {
		ttl = until.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}

	var ttlMillis int64
	if ttl > 0 {
		ttlMillis = max(ttl.Milliseconds(), 1)
	}

	key := redisKeyPrefix + digest(token)
	return revokeScript.Run(ctx, s.client, []string{key}, ttlMillis).Err()
}

func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+digest(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired is a no-op: redis evicts expired keys itself.
func (s *RedisStore) PurgeExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
