package history

import "time"

// RestBreak is one completed rest phase.
type RestBreak struct {
	ID          string    `gorm:"primaryKey;size:26" json:"id"`
	StartedAt   time.Time `gorm:"not null;index" json:"started_at"`
	EndedAt     time.Time `gorm:"not null" json:"ended_at"`
	RestSeconds int       `gorm:"not null" json:"rest_seconds"`
	WorkMinutes int       `gorm:"not null" json:"work_minutes"`
	Displays    int       `gorm:"not null;default:0" json:"displays"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Summary aggregates breaks over a period.
type Summary struct {
	Breaks       int64 `json:"breaks"`
	TotalSeconds int64 `json:"total_seconds"`
}
