package mysql

import (
	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

type DonationRepository struct {
	DB *gorm.DB
}

// Create 捐赠记录与库存增量在同一事务内提交，避免出现"有捐赠记录没加库存"的半写
func (r *DonationRepository) Create(donation *model.Donation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}
		resRepo := &ResourceRepository{DB: tx}
		return resRepo.Restock(donation.ResourceID, donation.Quantity)
	})
}

func (r *DonationRepository) ListByUser(userID uint64, limit int) ([]model.Donation, error) {
	var list []model.Donation
	err := r.DB.Where("user_id = ?", userID).
		Order("donated_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *DonationRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&model.Donation{}).Count(&n).Error
	return n, err
}
