package store_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/healthtrack-app/healthtrack-api/store"
)

func newMemoryStore(t *testing.T) *store.RedisKeyValueStore {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return store.NewRedisKeyValueStore(client, "test")
}
