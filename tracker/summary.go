package tracker

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

// Summary describes a finished tracking session.
type Summary struct {
	SessionID            string         `json:"session_id"`
	Strategy             string         `json:"strategy"`
	Steps                int            `json:"steps"`
	RejectedByGPS        int            `json:"rejected_by_gps"`
	Days                 map[string]int `json:"days"`
	StartedAt            int64          `json:"started_at"`
	EndedAt              int64          `json:"ended_at"`
	CadenceSPM           float64        `json:"cadence_spm"`
	IntervalStdDevMs     float64        `json:"interval_std_dev_ms"`
	LocationCorroborated bool           `json:"location_corroborated"`
	TodayTotal           int            `json:"today_total"`
}

// cadence returns steps per minute and the standard deviation of the
// intervals between accepted steps.
func cadence(acceptedAt []int64) (float64, float64) {
	if len(acceptedAt) < 2 {
		return 0, 0
	}

	intervals := make(stats.Float64Data, 0, len(acceptedAt)-1)
	for i := 1; i < len(acceptedAt); i++ {
		intervals = append(intervals, float64(acceptedAt[i]-acceptedAt[i-1]))
	}

	mean, err := stats.Mean(intervals)
	if err != nil || mean <= 0 {
		return 0, 0
	}

	deviation, err := stats.StandardDeviation(intervals)
	if err != nil {
		deviation = 0
	}

	return float64(time.Minute/time.Millisecond) / mean, deviation
}

// Record converts the summary into the persisted session log entry.
func (s Summary) Record(userID string) *schema.SessionRecord {
	return &schema.SessionRecord{
		ID:                   s.SessionID,
		AccountNumber:        userID,
		Strategy:             s.Strategy,
		Steps:                s.Steps,
		RejectedByGPS:        s.RejectedByGPS,
		CadenceSPM:           s.CadenceSPM,
		IntervalStdDevMs:     s.IntervalStdDevMs,
		LocationCorroborated: s.LocationCorroborated,
		StartedAt:            time.UnixMilli(s.StartedAt),
		EndedAt:              time.UnixMilli(s.EndedAt),
	}
}
