package model

import "time"

// TaskRecord is one occurrence of an objective on a calendar day.
// For a given (UserID, Date, Title) there is at most one authoritative row;
// recurring objectives are deduplicated by Title.
type TaskRecord struct {
	ID           string `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;uniqueIndex:idx_user_date_title"`
	Title        string `gorm:"uniqueIndex:idx_user_date_title"`
	Date         string `gorm:"uniqueIndex:idx_user_date_title"` // YYYY-MM-DD, local time
	Completed    bool   `gorm:"default:false"`
	IsRecurring  bool   `gorm:"default:false"`
	ReminderTime string // optional HH:MM, informational only
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
