package store

import (
	"context"
	"fmt"
)

var (
	ErrKeyNotFound = fmt.Errorf("key not found")
	ErrEmptyKey    = fmt.Errorf("empty key")
)

const (
	// ActiveUserKey holds the identity of the signed-in user on a device.
	ActiveUserKey = "userToken"

	stepHistoryKeyPrefix = "stepHistory_"
)

// KeyValueStore - string blobs addressed by key
type KeyValueStore interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	RemoveString(ctx context.Context, key string) error
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping() error
}

// StepHistoryKey returns the per-user key of the daily step history blob.
func StepHistoryKey(userID string) string {
	return stepHistoryKeyPrefix + userID
}

// ActiveUser returns the user id stored under the active user key.
func ActiveUser(ctx context.Context, kv KeyValueStore) (string, error) {
	return kv.GetString(ctx, ActiveUserKey)
}

func SetActiveUser(ctx context.Context, kv KeyValueStore, userID string) error {
	if userID == "" {
		return ErrEmptyKey
	}
	return kv.SetString(ctx, ActiveUserKey, userID)
}

func ClearActiveUser(ctx context.Context, kv KeyValueStore) error {
	return kv.RemoveString(ctx, ActiveUserKey)
}
