package entity

import "time"

// Counter holds the last value handed out by a named identifier sequence
type Counter struct {
	Name      string    `gorm:"primaryKey;size:100"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for Counter
func (Counter) TableName() string {
	return "counters"
}
