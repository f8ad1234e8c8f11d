package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

type KeyValueTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
}

func NewKeyValueTestSuite(connURI, dbName string) *KeyValueTestSuite {
	return &KeyValueTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *KeyValueTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI).SetServerSelectionTimeout(2 * time.Second)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	if err := mongoClient.Ping(context.Background(), nil); err != nil {
		s.T().Skipf("mongo db is not reachable: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)

	// make sure the test suite is run with a clean environment
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *KeyValueTestSuite) LoadMongoDBFixtures() error {
	_, err := s.testDatabase.Collection(schema.KeyValueCollection).InsertMany(context.Background(), []interface{}{
		schema.KeyValue{Key: StepHistoryKey("user-fixture"), Value: `{"2024-01-01":500}`},
		schema.KeyValue{Key: ActiveUserKey, Value: "user-fixture"},
	})
	return err
}

// CleanMongoDB drop the whole test mongodb
func (s *KeyValueTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *KeyValueTestSuite) TestGetString() {
	store := NewMongoKeyValueStore(s.mongoClient, s.testDBName)

	value, err := store.GetString(context.Background(), StepHistoryKey("user-fixture"))
	s.NoError(err)
	s.Equal(`{"2024-01-01":500}`, value)

	_, err = store.GetString(context.Background(), "missing")
	s.Equal(ErrKeyNotFound, err)

	_, err = store.GetString(context.Background(), "")
	s.Equal(ErrEmptyKey, err)
}

func (s *KeyValueTestSuite) TestSetStringUpserts() {
	store := NewMongoKeyValueStore(s.mongoClient, s.testDBName)
	ctx := context.Background()

	s.NoError(store.SetString(ctx, "upsert-key", "first"))
	s.NoError(store.SetString(ctx, "upsert-key", "second"))

	count, err := s.testDatabase.Collection(schema.KeyValueCollection).CountDocuments(ctx, bson.M{"key": "upsert-key"})
	s.NoError(err)
	s.Equal(int64(1), count)

	value, err := store.GetString(ctx, "upsert-key")
	s.NoError(err)
	s.Equal("second", value)
}

func (s *KeyValueTestSuite) TestRemoveString() {
	store := NewMongoKeyValueStore(s.mongoClient, s.testDBName)
	ctx := context.Background()

	s.NoError(store.SetString(ctx, "remove-key", "value"))
	s.NoError(store.RemoveString(ctx, "remove-key"))
	s.NoError(store.RemoveString(ctx, "remove-key"))

	_, err := store.GetString(ctx, "remove-key")
	s.Equal(ErrKeyNotFound, err)
}

func (s *KeyValueTestSuite) TestDailyAggregatorOnMongo() {
	store := NewMongoKeyValueStore(s.mongoClient, s.testDBName)
	agg := NewDailyAggregator(store, func() string { return "2024-01-01" })

	today, err := agg.LoadToday(context.Background(), "user-fixture")
	s.NoError(err)
	s.Equal(500, today)

	total, err := agg.Flush(context.Background(), "user-fixture", 25)
	s.NoError(err)
	s.Equal(525, total)

	active, err := ActiveUser(context.Background(), store)
	s.NoError(err)
	s.Equal("user-fixture", active)
}

func (s *KeyValueTestSuite) TestPing() {
	store := NewMongoKeyValueStore(s.mongoClient, s.testDBName)
	s.NoError(store.Ping())
}

func TestKeyValueTestSuite(t *testing.T) {
	suite.Run(t, NewKeyValueTestSuite("mongodb://127.0.0.1:27017/?compressors=disabled", "test-steps-db"))
}
