package model

import "time"

// 事件严重程度
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

const (
	EventActive   = "Active"
	EventResolved = "Resolved"
	EventArchived = "Archived"
)

type Event struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Latitude    float64
	Longitude   float64
	Severity    string `gorm:"size:50;not null;default:'Medium'"`
	Status      string `gorm:"size:50;not null;default:'Active';index"`
	CreatedAt   time.Time
}

func (Event) TableName() string {
	return "events"
}
