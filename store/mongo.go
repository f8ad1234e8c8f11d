package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
)

// MongoKeyValueStore keeps key value pairs as documents of one collection
type MongoKeyValueStore struct {
	client   *mongo.Client
	database string
}

// NewMongoKeyValueStore - return mongo backed key value operations
func NewMongoKeyValueStore(client *mongo.Client, database string) *MongoKeyValueStore {
	return &MongoKeyValueStore{
		client:   client,
		database: database,
	}
}

func (m *MongoKeyValueStore) collection() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.KeyValueCollection)
}

// GetString - value of a key, ErrKeyNotFound if absent
func (m *MongoKeyValueStore) GetString(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var kv schema.KeyValue
	if err := m.collection().FindOne(ctx, bson.M{"key": key}).Decode(&kv); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrKeyNotFound
		}
		return "", err
	}

	return kv.Value, nil
}

// SetString - upsert the value of a key
func (m *MongoKeyValueStore) SetString(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := m.collection().UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{"$set": bson.M{
			"value":      value,
			"updated_at": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// RemoveString - delete a key, absent keys are not an error
func (m *MongoKeyValueStore) RemoveString(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := m.collection().DeleteOne(ctx, bson.M{"key": key})
	return err
}

// Ping - ping mongo db
func (m *MongoKeyValueStore) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// Close - close mongo db connections
func (m *MongoKeyValueStore) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}
