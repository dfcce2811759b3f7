package model

import "time"

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	Phone        string `gorm:"size:20;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	IsVolunteer  bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}
