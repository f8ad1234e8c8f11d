package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCadence(t *testing.T) {
	spm, deviation := cadence(nil)
	assert.Equal(t, 0.0, spm)
	assert.Equal(t, 0.0, deviation)

	spm, deviation = cadence([]int64{1000})
	assert.Equal(t, 0.0, spm)
	assert.Equal(t, 0.0, deviation)

	spm, deviation = cadence([]int64{0, 500, 1000, 1500})
	assert.InDelta(t, 120, spm, 0.0001)
	assert.InDelta(t, 0, deviation, 0.0001)

	// intervals 400 and 600
	spm, deviation = cadence([]int64{0, 400, 1000})
	assert.InDelta(t, 120, spm, 0.0001)
	assert.InDelta(t, 100, deviation, 0.0001)
}

func TestSummaryRecord(t *testing.T) {
	s := Summary{
		SessionID: "session-1",
		Strategy:  "magnitude",
		Steps:     12,
		StartedAt: 1704067200000,
		EndedAt:   1704067260500,
	}

	record := s.Record("user-1")
	assert.Equal(t, "session-1", record.ID)
	assert.Equal(t, "user-1", record.AccountNumber)
	assert.Equal(t, 12, record.Steps)
	assert.Equal(t, int64(1704067200), record.StartedAt.Unix())
	assert.Equal(t, int64(1704067260500), record.EndedAt.UnixMilli())
}
