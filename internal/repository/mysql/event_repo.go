package mysql

import (
	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func (r *EventRepository) FindByID(id uint64) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	return &event, err
}

// ListActive 地图与看板用的活跃事件列表
func (r *EventRepository) ListActive() ([]model.Event, error) {
	var list []model.Event
	err := r.DB.Where("status = ?", model.EventActive).Find(&list).Error
	return list, err
}

func (r *EventRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Event{}).Count(&n).Error
	return n, err
}
