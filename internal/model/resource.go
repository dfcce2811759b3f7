package model

import "time"

// Resource 资源台账。不变式：0 <= available_quantity <= total_quantity
type Resource struct {
	ID                uint64 `gorm:"primaryKey"`
	Name              string `gorm:"uniqueIndex;size:100;not null"`
	Category          string `gorm:"size:50;not null;index"` // Food / Medical / Shelter ...
	Description       string `gorm:"type:text"`
	TotalQuantity     int    `gorm:"not null;default:0"`
	AvailableQuantity int    `gorm:"not null;default:0"`
	Unit              string `gorm:"size:20;not null;default:'units'"`
	CreatedAt         time.Time
}

func (Resource) TableName() string {
	return "resources"
}
