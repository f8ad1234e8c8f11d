package store_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/healthtrack-app/healthtrack-api/mocks"
	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/store"
)

func fixedDay(day string) store.DateKeyFunc {
	return func() string { return day }
}

func decodeHistory(t *testing.T, data string) schema.DailyStepHistory {
	var h schema.DailyStepHistory
	assert.NoError(t, json.Unmarshal([]byte(data), &h))
	return h
}

func TestFlushAddsToExistingTotal(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	key := store.StepHistoryKey("user-1")

	kv.EXPECT().GetString(gomock.Any(), key).Return(`{"2024-03-01":1200,"2024-03-02":40}`, nil)
	kv.EXPECT().SetString(gomock.Any(), key, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, value string) error {
			h := decodeHistory(t, value)
			assert.Equal(t, 1200, h["2024-03-01"])
			assert.Equal(t, 55, h["2024-03-02"])
			assert.Len(t, h, 2)
			return nil
		})

	agg := store.NewDailyAggregator(kv, fixedDay("2024-03-02"))
	total, err := agg.Flush(context.Background(), "user-1", 15)
	assert.NoError(t, err)
	assert.Equal(t, 55, total)
}

func TestFlushColdStart(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	key := store.StepHistoryKey("user-1")

	kv.EXPECT().GetString(gomock.Any(), key).Return("", store.ErrKeyNotFound)
	kv.EXPECT().SetString(gomock.Any(), key, `{"2024-01-01":500}`).Return(nil)

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	total, err := agg.Flush(context.Background(), "user-1", 500)
	assert.NoError(t, err)
	assert.Equal(t, 500, total)
}

func TestFlushZeroStepsWritesNothing(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	kv.EXPECT().GetString(gomock.Any(), gomock.Any()).Return(`{"2024-01-01":10}`, nil)

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	total, err := agg.Flush(context.Background(), "user-1", 0)
	assert.NoError(t, err)
	assert.Equal(t, 10, total)
}

func TestMalformedHistoryTreatedAsEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	key := store.StepHistoryKey("user-1")

	kv.EXPECT().GetString(gomock.Any(), key).Return("{not json", nil).Times(2)
	kv.EXPECT().SetString(gomock.Any(), key, `{"2024-01-01":7}`).Return(nil)

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	malformed := []string{}
	agg.OnMalformed(func(userID string, _ error) {
		malformed = append(malformed, userID)
	})

	today, err := agg.LoadToday(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, today)

	total, err := agg.Flush(context.Background(), "user-1", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, []string{"user-1", "user-1"}, malformed)
}

func TestNullHistoryTreatedAsEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	kv.EXPECT().GetString(gomock.Any(), gomock.Any()).Return("null", nil)

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	history, err := agg.History(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestFlushStorageFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	kv.EXPECT().GetString(gomock.Any(), gomock.Any()).Return("", store.ErrKeyNotFound)
	kv.EXPECT().SetString(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full"))

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	_, err := agg.Flush(context.Background(), "user-1", 12)
	assert.EqualError(t, err, "disk full")
}

func TestLoadStorageFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	kv.EXPECT().GetString(gomock.Any(), gomock.Any()).Return("", fmt.Errorf("connection refused"))

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-01"))
	_, err := agg.LoadToday(context.Background(), "user-1")
	assert.EqualError(t, err, "connection refused")
}

func TestFlushDaysAcrossMidnight(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	kv := mocks.NewMockKeyValueStore(ctl)
	key := store.StepHistoryKey("user-1")

	kv.EXPECT().GetString(gomock.Any(), key).Return(`{"2024-01-01":100}`, nil)
	kv.EXPECT().SetString(gomock.Any(), key, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, value string) error {
			h := decodeHistory(t, value)
			assert.Equal(t, 130, h["2024-01-01"])
			assert.Equal(t, 20, h["2024-01-02"])
			return nil
		})

	agg := store.NewDailyAggregator(kv, fixedDay("2024-01-02"))
	total, err := agg.FlushDays(context.Background(), "user-1", map[string]int{
		"2024-01-01": 30,
		"2024-01-02": 20,
		"2024-01-03": 0,
	}, "2024-01-02")
	assert.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestAggregatorOnRedisBackend(t *testing.T) {
	kv := newMemoryStore(t)
	agg := store.NewDailyAggregator(kv, fixedDay("2024-05-05"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := agg.Flush(ctx, "user-1", 10)
		assert.NoError(t, err)
	}
	_, err := agg.Flush(ctx, "user-2", 4)
	assert.NoError(t, err)

	total, err := agg.LoadDay(ctx, "user-1", "2024-05-05")
	assert.NoError(t, err)
	assert.Equal(t, 30, total)

	total, err = agg.LoadToday(ctx, "user-2")
	assert.NoError(t, err)
	assert.Equal(t, 4, total)
}
