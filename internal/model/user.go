package model

import "time"

// User stores Telegram user metadata plus the cached streak aggregate.
//
// The streak fields are a cache over the user's TaskRecord history: they must
// always be reproducible by re-evaluating the history back to JoinDate and are
// never a source of truth on their own.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Username   string

	StreakCount       int      `gorm:"default:0"`
	PersistenceLog    []string `gorm:"serializer:json"` // ordered perfect-day keys
	LastCompletedDate string   // newest perfect day, YYYY-MM-DD
	LastActiveDate    string   // last day the reconciliation pipeline ran
	JoinDate          string   // lower bound for any backward history scan

	CreatedAt time.Time
	UpdatedAt time.Time
}
