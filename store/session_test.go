package store

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/suite"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

type SessionLogTestSuite struct {
	suite.Suite
	ormDB *gorm.DB
}

func (s *SessionLogTestSuite) SetupTest() {
	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		s.T().Fatalf("open sqlite with error: %s", err)
	}
	if err := db.AutoMigrate(&schema.SessionRecord{}).Error; err != nil {
		s.T().Fatalf("migrate with error: %s", err)
	}
	s.ormDB = db
}

func (s *SessionLogTestSuite) TearDownTest() {
	s.ormDB.Close()
}

func (s *SessionLogTestSuite) TestRecordSession() {
	log := NewORMSessionLog(s.ormDB)
	s.NoError(log.Ping())

	record := &schema.SessionRecord{
		ID:            "session-1",
		AccountNumber: "user-1",
		Strategy:      "magnitude",
		Steps:         42,
		StartedAt:     time.Unix(1, 0),
		EndedAt:       time.Unix(61, 0),
	}
	s.NoError(log.RecordSession(record))
	s.Equal(ErrSessionRecorded, log.RecordSession(record))

	records, err := log.ListSessions("user-1", 0)
	s.NoError(err)
	s.Len(records, 1)
	s.Equal(42, records[0].Steps)
}

func (s *SessionLogTestSuite) TestListSessionsNewestFirst() {
	log := NewORMSessionLog(s.ormDB)

	for i, id := range []string{"a", "b", "c"} {
		s.NoError(log.RecordSession(&schema.SessionRecord{
			ID:            id,
			AccountNumber: "user-1",
			StartedAt:     time.Unix(int64(i*1000), 0),
		}))
	}
	s.NoError(log.RecordSession(&schema.SessionRecord{ID: "other", AccountNumber: "user-2"}))

	records, err := log.ListSessions("user-1", 2)
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("c", records[0].ID)
	s.Equal("b", records[1].ID)
}

func TestSessionLogTestSuite(t *testing.T) {
	suite.Run(t, new(SessionLogTestSuite))
}
