package service

import (
	"math"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

// CatalogService 看板数据：事件、资源目录与管理端统计
type CatalogService struct {
	resRepo      *mysql.ResourceRepository
	eventRepo    *mysql.EventRepository
	userRepo     *mysql.UserRepository
	donationRepo *mysql.DonationRepository
	reqRepo      *mysql.RequestRepository
}

type ResourceUtilization struct {
	Name        string  `json:"name"`
	Utilization float64 `json:"utilization"`
}

type SystemStats struct {
	TotalUsers          int64                 `json:"total_users"`
	TotalEvents         int64                 `json:"total_events"`
	TotalRequests       int64                 `json:"total_requests"`
	PendingRequests     int64                 `json:"pending_requests"`
	TotalDonations      int64                 `json:"total_donations"`
	ResourceUtilization []ResourceUtilization `json:"resource_utilization"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		resRepo:      &mysql.ResourceRepository{DB: db},
		eventRepo:    &mysql.EventRepository{DB: db},
		userRepo:     &mysql.UserRepository{DB: db},
		donationRepo: &mysql.DonationRepository{DB: db},
		reqRepo:      &mysql.RequestRepository{DB: db},
	}
}

func (s *CatalogService) ActiveEvents() ([]model.Event, error) {
	return s.eventRepo.ListActive()
}

func (s *CatalogService) Resources() ([]model.Resource, error) {
	return s.resRepo.List()
}

// Stats 管理端总览统计
func (s *CatalogService) Stats() (*SystemStats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.Count()
	if err != nil {
		return nil, err
	}
	requests, err := s.reqRepo.CountByStatus("")
	if err != nil {
		return nil, err
	}
	pending, err := s.reqRepo.CountByStatus(model.RequestPending)
	if err != nil {
		return nil, err
	}
	donations, err := s.donationRepo.Count()
	if err != nil {
		return nil, err
	}

	resources, err := s.resRepo.List()
	if err != nil {
		return nil, err
	}
	utilization := make([]ResourceUtilization, 0, len(resources))
	for _, r := range resources {
		var u float64
		if r.TotalQuantity > 0 {
			u = float64(r.TotalQuantity-r.AvailableQuantity) / float64(r.TotalQuantity) * 100
		}
		utilization = append(utilization, ResourceUtilization{
			Name:        r.Name,
			Utilization: math.Round(u*100) / 100,
		})
	}

	return &SystemStats{
		TotalUsers:          users,
		TotalEvents:         events,
		TotalRequests:       requests,
		PendingRequests:     pending,
		TotalDonations:      donations,
		ResourceUtilization: utilization,
	}, nil
}
