package store

import (
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

var ErrSessionRecorded = fmt.Errorf("session has been recorded")

const defaultSessionListLimit = 20

// SessionLog keeps the summaries of completed tracking sessions
type SessionLog interface {
	Ping() error

	RecordSession(*schema.SessionRecord) error
	ListSessions(accountNumber string, limit int) ([]schema.SessionRecord, error)
}

// ORMSessionLog is an implementation of SessionLog
type ORMSessionLog struct {
	ormDB *gorm.DB
}

func NewORMSessionLog(ormDB *gorm.DB) *ORMSessionLog {
	return &ORMSessionLog{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *ORMSessionLog) Ping() error {
	return s.ormDB.DB().Ping()
}

// RecordSession inserts a session summary. A summary is written once.
func (s *ORMSessionLog) RecordSession(record *schema.SessionRecord) error {
	var count int
	if err := s.ormDB.Model(&schema.SessionRecord{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSessionRecorded
	}

	if err := s.ormDB.Create(record).Error; err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrSessionRecorded
		}
		return err
	}
	return nil
}

// ListSessions returns the latest sessions of an account, newest first
func (s *ORMSessionLog) ListSessions(accountNumber string, limit int) ([]schema.SessionRecord, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}

	records := []schema.SessionRecord{}
	if err := s.ormDB.
		Where("account_number = ?", accountNumber).
		Order("started_at desc").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
