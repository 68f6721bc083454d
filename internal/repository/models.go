package repository

import "time"

// RedirectRule is one stored redirect. Position is the dense 0-based list
// order the UI shows and deletes by; Source and Destination are persisted
// trimmed of surrounding whitespace (the service trims after validation).
type RedirectRule struct {
	ID          uint   `gorm:"primaryKey"`
	Position    int    `gorm:"uniqueIndex;not null"`
	Source      string `gorm:"not null"`
	Destination string `gorm:"not null"`
	IsRegex     bool   `gorm:"default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RuleStats is one day's worth of validation outcome counters.
type RuleStats struct {
	Date              time.Time `gorm:"primaryKey;type:date"`
	Accepted          int64     `gorm:"default:0"`
	Advisories        int64     `gorm:"default:0"`
	RejectedEmpty     int64     `gorm:"default:0"`
	RejectedDuplicate int64     `gorm:"default:0"`
	RejectedCycle     int64     `gorm:"default:0"`
	Deleted           int64     `gorm:"default:0"`
}
