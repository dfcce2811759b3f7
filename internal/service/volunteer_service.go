package service

import (
	"context"
	"errors"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrNotVolunteer       = errors.New("must be a volunteer")
	ErrRequestNotApproved = errors.New("task not available")
	ErrNotAssignee        = errors.New("not your assignment")
)

type VolunteerService struct {
	userRepo *mysql.UserRepository
	reqRepo  *mysql.RequestRepository
	asgRepo  *mysql.AssignmentRepository
}

func NewVolunteerService(db *gorm.DB) *VolunteerService {
	return &VolunteerService{
		userRepo: &mysql.UserRepository{DB: db},
		reqRepo:  &mysql.RequestRepository{DB: db},
		asgRepo:  &mysql.AssignmentRepository{DB: db},
	}
}

// Signup 成为志愿者，重复调用无副作用
func (s *VolunteerService) Signup(userID uint64) error {
	return s.userRepo.MarkVolunteer(userID)
}

// AvailableTasks 已批准且未被认领的请求
func (s *VolunteerService) AvailableTasks() ([]model.Request, error) {
	return s.asgRepo.ListAvailable()
}

func (s *VolunteerService) MyAssignments(userID uint64) ([]model.VolunteerAssignment, error) {
	return s.asgRepo.ListByUser(userID)
}

// Accept 志愿者抢单。先查后插只是给出友好报错，
// 一单一人的权威约束是 request_id 上的唯一索引
func (s *VolunteerService) Accept(userID, requestID uint64) (uint64, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return 0, err
	}
	if !user.IsVolunteer {
		return 0, ErrNotVolunteer
	}

	req, err := s.reqRepo.FindByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, mysql.ErrRequestNotFound
		}
		return 0, err
	}
	if req.Status != model.RequestApproved {
		return 0, ErrRequestNotApproved
	}

	taken, err := s.asgRepo.ExistsForRequest(requestID)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, mysql.ErrAlreadyAssigned
	}

	a := &model.VolunteerAssignment{
		UserID:    userID,
		RequestID: requestID,
		Status:    model.AssignmentInProgress,
	}
	if err := s.asgRepo.Create(a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

// Complete 只有被指派的志愿者能完成任务，完成后父请求进入 Fulfilled 终态
func (s *VolunteerService) Complete(ctx context.Context, userID, assignmentID uint64) error {
	a, err := s.asgRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mysql.ErrAssignmentNotFound
		}
		return err
	}
	if a.UserID != userID {
		return ErrNotAssignee
	}
	return s.asgRepo.Complete(ctx, assignmentID)
}
