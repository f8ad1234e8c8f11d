package schema

import (
	"time"
)

// SessionRecord is the summary of a completed tracking session
type SessionRecord struct {
	ID                   string    `json:"id" gorm:"primary_key"`
	AccountNumber        string    `json:"account_number" gorm:"index"`
	Strategy             string    `json:"strategy"`
	Steps                int       `json:"steps"`
	RejectedByGPS        int       `json:"rejected_by_gps"`
	CadenceSPM           float64   `json:"cadence_spm"`
	IntervalStdDevMs     float64   `json:"interval_std_dev_ms"`
	LocationCorroborated bool      `json:"location_corroborated"`
	StartedAt            time.Time `json:"started_at"`
	EndedAt              time.Time `json:"ended_at"`
	CreatedAt            time.Time `json:"created_at"`
}

func (SessionRecord) TableName() string {
	return "step_sessions"
}
