package model

import "time"

const (
	EventRequestApproved  = "request.approved"
	EventRequestRejected  = "request.rejected"
	EventRequestFulfilled = "request.fulfilled"
)

// ReliefOutbox 审批/履约事件监控表
type ReliefOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	RequestID uint64 `gorm:"not null;index"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReliefOutbox) TableName() string { return "relief_outbox" }
