package model

import "time"

const (
	DonationPending   = "Pending"
	DonationCompleted = "Completed"
	DonationCancelled = "Cancelled"
)

// Donation 捐赠记录，创建后不再修改
type Donation struct {
	ID         uint64  `gorm:"primaryKey"`
	UserID     uint64  `gorm:"not null;index"`
	ResourceID uint64  `gorm:"not null;index"`
	EventID    *uint64 `gorm:"index"` // 可以不挂靠具体事件
	Quantity   int     `gorm:"not null"`
	Status     string  `gorm:"size:50;not null;default:'Completed'"`
	Notes      string  `gorm:"type:text"`
	DonatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Donation) TableName() string {
	return "donations"
}
