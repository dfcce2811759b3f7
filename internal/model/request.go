package model

import "time"

// 请求状态机：Pending -> Approved/Rejected；Approved -> Fulfilled（仅由志愿者完成任务触发）
const (
	RequestPending   = "Pending"
	RequestApproved  = "Approved"
	RequestRejected  = "Rejected"
	RequestFulfilled = "Fulfilled"
)

const (
	UrgencyLow      = "Low"
	UrgencyMedium   = "Medium"
	UrgencyHigh     = "High"
	UrgencyCritical = "Critical"
)

type Request struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"not null;index"`
	ResourceID uint64 `gorm:"not null;index"`
	EventID    uint64 `gorm:"not null;index"`
	Quantity   int    `gorm:"not null"`
	Urgency    string `gorm:"size:50;not null;default:'Medium'"`
	Status     string `gorm:"size:50;not null;default:'Pending';index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Request) TableName() string {
	return "requests"
}

const (
	ActionApproved = "Approved"
	ActionRejected = "Rejected"
)

// AdminResponse 审批留痕，一个请求只会有一条
type AdminResponse struct {
	ID          uint64 `gorm:"primaryKey"`
	RequestID   uint64 `gorm:"not null;index"`
	AdminID     uint64 `gorm:"not null;index"`
	Action      string `gorm:"size:50;not null"`
	Comment     string `gorm:"type:text"`
	RespondedAt time.Time `gorm:"autoCreateTime"`
}

func (AdminResponse) TableName() string {
	return "admin_responses"
}
