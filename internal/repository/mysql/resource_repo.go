package mysql

import (
	"Relief_Hub/internal/model"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	DB *gorm.DB
}

func (r *ResourceRepository) FindByID(id uint64) (*model.Resource, error) {
	var resource model.Resource
	err := r.DB.First(&resource, id).Error
	return &resource, err
}

func (r *ResourceRepository) List() ([]model.Resource, error) {
	var list []model.Resource
	err := r.DB.Order("name").Find(&list).Error
	return list, err
}

// Reserve 有量才扣：带守卫的条件更新，靠 RowsAffected 判断是否扣成功，
// 并发审批下不会把 available_quantity 扣成负数
func (r *ResourceRepository) Reserve(resourceID uint64, quantity int) (bool, error) {
	res := r.DB.Model(&model.Resource{}).
		Where("id = ? AND available_quantity >= ?", resourceID, quantity).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", quantity))
	return res.RowsAffected > 0, res.Error
}

// Restock 捐赠入库：总量与可用量同步加
func (r *ResourceRepository) Restock(resourceID uint64, quantity int) error {
	return r.DB.Model(&model.Resource{}).
		Where("id = ?", resourceID).
		UpdateColumns(map[string]any{
			"total_quantity":     gorm.Expr("total_quantity + ?", quantity),
			"available_quantity": gorm.Expr("available_quantity + ?", quantity),
		}).Error
}
