package mysql

import (
	"context"
	"errors"
	"time"

	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrAlreadyDecided       = errors.New("request already decided")
	ErrInsufficientQuantity = errors.New("insufficient resource quantity")
)

type RequestRepository struct {
	DB *gorm.DB
}

// RequestRow 管理端列表行（联表查询结果）
type RequestRow struct {
	ID           uint64    `json:"id"`
	UserName     string    `json:"user_name"`
	ResourceName string    `json:"resource_name"`
	EventName    string    `json:"event_name"`
	Quantity     int       `json:"quantity"`
	Urgency      string    `json:"urgency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// DecisionRow 审批记录（含审批人姓名）
type DecisionRow struct {
	Action      string    `json:"action"`
	Comment     string    `json:"comment"`
	RespondedAt time.Time `json:"responded_at"`
	AdminName   string    `json:"admin_name"`
}

func (r *RequestRepository) Create(req *model.Request) error {
	return r.DB.Create(req).Error
}

func (r *RequestRepository) FindByID(id uint64) (*model.Request, error) {
	var req model.Request
	err := r.DB.First(&req, id).Error
	return &req, err
}

// FindOwned 只允许请求人查看自己的请求
func (r *RequestRepository) FindOwned(userID, requestID uint64) (*model.Request, error) {
	var req model.Request
	err := r.DB.Where("id = ? AND user_id = ?", requestID, userID).First(&req).Error
	return &req, err
}

// Decide 审批主流程，单事务内完成：
//  1. 校验请求存在且仍为 Pending
//  2. 批准时按守卫条件扣减库存，扣不动说明余量不足
//  3. 条件更新状态（WHERE status='Pending'），RowsAffected=0 说明被并发审批抢先
//  4. 落一条 AdminResponse 与 outbox 事件
// 任一步失败整体回滚，库存与请求状态保持原样
func (r *RequestRepository) Decide(ctx context.Context, requestID, adminID uint64, action, comment string) (*model.Request, error) {
	var req model.Request
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if req.Status != model.RequestPending {
			return ErrAlreadyDecided
		}

		newStatus := model.RequestRejected
		eventType := model.EventRequestRejected
		if action == model.ActionApproved {
			newStatus = model.RequestApproved
			eventType = model.EventRequestApproved

			resRepo := &ResourceRepository{DB: tx}
			ok, err := resRepo.Reserve(req.ResourceID, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInsufficientQuantity
			}
		}

		// 双重审批守卫：status 仍为 Pending 才能翻转
		res := tx.Model(&model.Request{}).
			Where("id = ? AND status = ?", requestID, model.RequestPending).
			Updates(map[string]any{"status": newStatus})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyDecided
		}
		req.Status = newStatus

		if err := tx.Create(&model.AdminResponse{
			RequestID: requestID,
			AdminID:   adminID,
			Action:    action,
			Comment:   comment,
		}).Error; err != nil {
			return err
		}

		obRepo := &OutboxRepository{DB: tx}
		return obRepo.Insert(eventType, &req)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRows 管理端分页列表，status 为空时不过滤
func (r *RequestRepository) ListRows(status string, offset, limit int) ([]RequestRow, error) {
	var rows []RequestRow
	q := r.DB.Table("requests").
		Select("requests.id, users.name AS user_name, resources.name AS resource_name, events.name AS event_name, requests.quantity, requests.urgency, requests.status, requests.created_at").
		Joins("JOIN users ON users.id = requests.user_id").
		Joins("JOIN resources ON resources.id = requests.resource_id").
		Joins("JOIN events ON events.id = requests.event_id")
	if status != "" {
		q = q.Where("requests.status = ?", status)
	}
	err := q.Order("requests.created_at DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *RequestRepository) CountByStatus(status string) (int64, error) {
	var n int64
	q := r.DB.Model(&model.Request{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

// FindRow 请求详情行（请求人视角）
func (r *RequestRepository) FindRow(userID, requestID uint64) (*RequestRow, error) {
	var row RequestRow
	res := r.DB.Table("requests").
		Select("requests.id, users.name AS user_name, resources.name AS resource_name, events.name AS event_name, requests.quantity, requests.urgency, requests.status, requests.created_at").
		Joins("JOIN users ON users.id = requests.user_id").
		Joins("JOIN resources ON resources.id = requests.resource_id").
		Joins("JOIN events ON events.id = requests.event_id").
		Where("requests.id = ? AND requests.user_id = ?", requestID, userID).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// Decision 查询请求的审批记录，没有则返回 nil
func (r *RequestRepository) Decision(requestID uint64) (*DecisionRow, error) {
	var row DecisionRow
	res := r.DB.Table("admin_responses").
		Select("admin_responses.action, admin_responses.comment, admin_responses.responded_at, users.name AS admin_name").
		Joins("JOIN users ON users.id = admin_responses.admin_id").
		Where("admin_responses.request_id = ?", requestID).
		Order("admin_responses.id ASC").
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *RequestRepository) CountResponses(requestID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.AdminResponse{}).Where("request_id = ?", requestID).Count(&n).Error
	return n, err
}
