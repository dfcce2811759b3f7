package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// Insert 在调用方事务内追加一条事件记录
func (r *OutboxRepository) Insert(eventType string, req *model.Request) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time":  time.Now().UTC().Format(time.RFC3339Nano),
		"request_id":  req.ID,
		"user_id":     req.UserID,
		"resource_id": req.ResourceID,
		"quantity":    req.Quantity,
		"status":      req.Status,
	})
	ob := &model.ReliefOutbox{
		EventType: eventType,
		RequestID: req.ID,
		Payload:   string(payload),
		Status:    0,
	}
	return r.DB.Create(ob).Error
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ReliefOutbox, error) {
	var list []model.ReliefOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，累加重试次数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ReliefOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ReliefOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
