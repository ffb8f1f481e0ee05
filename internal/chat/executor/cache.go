package executor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "chat:query:"

// Cache stores encoded query results by key. Get reports a miss with found
// false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// RedisCache keeps results in Redis.
type RedisCache struct {
	client redis.UniversalClient
}

func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// CacheKey derives the cache key of a compiled statement.
func CacheKey(st *Statement) string {
	h := sha256.New()
	h.Write([]byte(st.SQL))
	h.Write([]byte{0})
	args, _ := json.Marshal(st.Args)
	h.Write(args)
	if st.Pick != "" {
		h.Write([]byte{0})
		h.Write([]byte(st.Pick))
	}
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// decodeCached reads a cached result back into the shape the terminal returns.
func decodeCached(st *Statement, data []byte) (interface{}, error) {
	var err error
	switch {
	case st.Terminal == TerminalCount:
		var n int64
		err = json.Unmarshal(data, &n)
		return n, err
	case st.Terminal == TerminalExists:
		var b bool
		err = json.Unmarshal(data, &b)
		return b, err
	case st.Terminal == TerminalAggregate && st.Pick == "":
		var m map[string]interface{}
		err = json.Unmarshal(data, &m)
		return m, err
	case st.Flat && !st.Single:
		var list []interface{}
		err = json.Unmarshal(data, &list)
		return list, err
	case st.Single && !st.Flat:
		if string(data) == "null" {
			return nil, nil
		}
		var row Row
		err = json.Unmarshal(data, &row)
		return row, err
	case !st.Flat && !st.Single && st.Terminal == TerminalList:
		rows := []Row{}
		err = json.Unmarshal(data, &rows)
		return rows, err
	}
	var v interface{}
	err = json.Unmarshal(data, &v)
	return v, err
}
