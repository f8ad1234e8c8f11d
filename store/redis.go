package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const redisLogPrefix = "redis"

// RedisKeyValueStore keeps key value pairs as plain redis strings
type RedisKeyValueStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisKeyValueStore(client *redis.Client, namespace string) *RedisKeyValueStore {
	return &RedisKeyValueStore{
		client:    client,
		namespace: namespace,
	}
}

func (r *RedisKeyValueStore) key(key string) string {
	if r.namespace == "" {
		return key
	}
	return r.namespace + ":" + key
}

func (r *RedisKeyValueStore) GetString(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *RedisKeyValueStore) SetString(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisKeyValueStore) RemoveString(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisKeyValueStore) Ping() error {
	return r.client.Ping(context.Background()).Err()
}

func (r *RedisKeyValueStore) Close() {
	log.WithField("prefix", redisLogPrefix).Info("closing redis connections")
	_ = r.client.Close()
}
