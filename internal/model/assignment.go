package model

import "time"

const (
	AssignmentAssigned   = "Assigned"
	AssignmentInProgress = "In Progress"
	AssignmentCompleted  = "Completed"
)

// VolunteerAssignment 志愿者任务。request_id 唯一索引保证一个请求至多一个任务，
// 并发抢单时由数据库兜底
type VolunteerAssignment struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;index"`
	RequestID   uint64 `gorm:"not null;uniqueIndex"`
	Status      string `gorm:"size:50;not null;default:'Assigned'"`
	AssignedAt  time.Time `gorm:"autoCreateTime"`
	CompletedAt *time.Time
	Notes       string `gorm:"type:text"`
}

func (VolunteerAssignment) TableName() string {
	return "volunteer_assignments"
}
