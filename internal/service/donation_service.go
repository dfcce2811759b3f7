package service

import (
	"errors"

	"Relief_Hub/internal/model"
	"Relief_Hub/internal/repository/mysql"

	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrResourceNotFound = errors.New("resource not found")
	ErrEventNotFound    = errors.New("event not found")
)

type DonationService struct {
	repo      *mysql.DonationRepository
	resRepo   *mysql.ResourceRepository
	eventRepo *mysql.EventRepository
}

func NewDonationService(db *gorm.DB) *DonationService {
	return &DonationService{
		repo:      &mysql.DonationRepository{DB: db},
		resRepo:   &mysql.ResourceRepository{DB: db},
		eventRepo: &mysql.EventRepository{DB: db},
	}
}

// Donate 记录捐赠并入库。库存增量与捐赠记录同事务提交
func (s *DonationService) Donate(userID, resourceID uint64, quantity int, eventID *uint64, notes string) (uint64, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	if _, err := s.resRepo.FindByID(resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrResourceNotFound
		}
		return 0, err
	}
	if eventID != nil {
		if _, err := s.eventRepo.FindByID(*eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrEventNotFound
			}
			return 0, err
		}
	}

	donation := &model.Donation{
		UserID:     userID,
		ResourceID: resourceID,
		EventID:    eventID,
		Quantity:   quantity,
		Status:     model.DonationCompleted,
		Notes:      notes,
	}
	if err := s.repo.Create(donation); err != nil {
		return 0, err
	}
	return donation.ID, nil
}

// ListMine 看板上展示的最近捐赠
func (s *DonationService) ListMine(userID uint64) ([]model.Donation, error) {
	return s.repo.ListByUser(userID, 10)
}
