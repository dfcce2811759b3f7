package service

import (
	"context"
	"errors"
	"log"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

var ErrInvalidAction = errors.New("invalid action")

const adminPageSize = 10

type RequestService struct {
	repo      *mysql.RequestRepository
	resRepo   *mysql.ResourceRepository
	eventRepo *mysql.EventRepository
	userRepo  *mysql.UserRepository
	smtp      pkg.SMTPConfig
}

// RequestDetail 请求人视角的详情
type RequestDetail struct {
	ID           uint64             `json:"id"`
	ResourceName string             `json:"resource_name"`
	EventName    string             `json:"event_name"`
	Quantity     int                `json:"quantity"`
	Urgency      string             `json:"urgency"`
	Status       string             `json:"status"`
	CreatedAt    string             `json:"created_at"`
	Response     *mysql.DecisionRow `json:"response,omitempty"`
}

func NewRequestService(db *gorm.DB, smtp pkg.SMTPConfig) *RequestService {
	return &RequestService{
		repo:      &mysql.RequestRepository{DB: db},
		resRepo:   &mysql.ResourceRepository{DB: db},
		eventRepo: &mysql.EventRepository{DB: db},
		userRepo:  &mysql.UserRepository{DB: db},
		smtp:      smtp,
	}
}

// Create 提交请求。创建时刻不校验余量，超订是允许的，真正的扣减发生在审批
func (s *RequestService) Create(userID, resourceID, eventID uint64, quantity int, urgency string) (uint64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if _, err := s.resRepo.FindByID(resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, err
	}
	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}
	if urgency == "" {
		urgency = model.UrgencyMedium
	}

	req := &model.Request{
		UserID:     userID,
		ResourceID: resourceID,
		EventID:    eventID,
		Quantity:   quantity,
		Urgency:    urgency,
		Status:     model.RequestPending,
	}
	if err := s.repo.Create(req); err != nil {
		return 0, err
	}
	return req.ID, nil
}

// Detail 请求详情，带上已有的审批记录
func (s *RequestService) Detail(userID, requestID uint64) (*RequestDetail, error) {
	row, err := s.repo.FindRow(userID, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mysql.ErrRequestNotFound
		}
		return nil, err
	}
	decision, err := s.repo.Decision(requestID)
	if err != nil {
		return nil, err
	}
	return &RequestDetail{
		ID:           row.ID,
		ResourceName: row.ResourceName,
		EventName:    row.EventName,
		Quantity:     row.Quantity,
		Urgency:      row.Urgency,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
		Response:     decision,
	}, nil
}

// Decide 管理员审批，approve/reject。原子性由仓储层事务保证
func (s *RequestService) Decide(ctx context.Context, requestID, adminID uint64, action, comment string) error {
	var decided string
	switch action {
	case "approve":
		decided = model.ActionApproved
	case "reject":
		decided = model.ActionRejected
	default:
		return ErrInvalidAction
	}

	req, err := s.repo.Decide(ctx, requestID, adminID, decided, comment)
	if err != nil {
		return err
	}

	// 结果通知尽力而为，不影响审批事务
	if s.smtp.Enabled() {
		go s.notifyDecision(req, decided, comment)
	}
	return nil
}

func (s *RequestService) notifyDecision(req *model.Request, action, comment string) {
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return
	}
	resource, err := s.resRepo.FindByID(req.ResourceID)
	if err != nil {
		return
	}
	html := pkg.DecisionHTML(resource.Name, req.Quantity, action, comment)
	if err := pkg.SendEmail(s.smtp, user.Email, "Request "+action, html); err != nil {
		log.Printf("decision mail err: %v", err)
	}
}

// AdminList 管理端分页列表
func (s *RequestService) AdminList(status string, page int) ([]mysql.RequestRow, int64, int, error) {
	if page <= 0 {
		page = 1
	}
	total, err := s.repo.CountByStatus(status)
	if err != nil {
		return nil, 0, 0, err
	}
	pages := int((total + adminPageSize - 1) / adminPageSize)

	offset := (page - 1) * adminPageSize
	rows, err := s.repo.ListRows(status, offset, adminPageSize)
	if err != nil {
		return nil, 0, 0, err
	}
	return rows, total, pages, nil
}
