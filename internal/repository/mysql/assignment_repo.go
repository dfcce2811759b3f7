package mysql

import (
	"context"
	"errors"
	"time"

	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadyAssigned    = errors.New("task already assigned")
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func (r *AssignmentRepository) FindByID(id uint64) (*model.VolunteerAssignment, error) {
	var a model.VolunteerAssignment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssignmentRepository) ExistsForRequest(requestID uint64) (bool, error) {
	var n int64
	err := r.DB.Model(&model.VolunteerAssignment{}).
		Where("request_id = ?", requestID).
		Count(&n).Error
	return n > 0, err
}

// Create 依赖 request_id 唯一索引兜底并发抢单，冲突翻译为 ErrAlreadyAssigned
func (r *AssignmentRepository) Create(a *model.VolunteerAssignment) error {
	if err := r.DB.Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyAssigned
		}
		return err
	}
	return nil
}

// Complete 完成任务并级联将父请求置为 Fulfilled，单事务
func (r *AssignmentRepository) Complete(ctx context.Context, assignmentID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.VolunteerAssignment
		if err := tx.First(&a, assignmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&model.VolunteerAssignment{}).
			Where("id = ?", assignmentID).
			Updates(map[string]any{
				"status":       model.AssignmentCompleted,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		var req model.Request
		if err := tx.First(&req, a.RequestID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Request{}).
			Where("id = ?", a.RequestID).
			Updates(map[string]any{"status": model.RequestFulfilled}).Error; err != nil {
			return err
		}
		req.Status = model.RequestFulfilled

		obRepo := &OutboxRepository{DB: tx}
		return obRepo.Insert(model.EventRequestFulfilled, &req)
	})
}

func (r *AssignmentRepository) ListByUser(userID uint64) ([]model.VolunteerAssignment, error) {
	var list []model.VolunteerAssignment
	err := r.DB.Where("user_id = ?", userID).
		Order("assigned_at DESC").
		Find(&list).Error
	return list, err
}

// ListAvailable 可领取任务：已批准且尚未被任何志愿者认领的请求
func (r *AssignmentRepository) ListAvailable() ([]model.Request, error) {
	var list []model.Request
	sub := r.DB.Model(&model.VolunteerAssignment{}).Select("request_id")
	err := r.DB.Model(&model.Request{}).
		Where("status = ?", model.RequestApproved).
		Where("id NOT IN (?)", sub).
		Order("created_at").
		Find(&list).Error
	return list, err
}
