package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByID(id uint) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	FindAll(limit, offset int) ([]model.Coupon, error)
	Update(coupon *model.Coupon) error
	Delete(id uint) error
	IncrementUsage(id uint) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	logger.Debug("Creating coupon in database", map[string]interface{}{
		"code": coupon.Code,
		"type": coupon.Type,
	})

	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByID(id uint) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindAll(limit, offset int) ([]model.Coupon, error) {
	query := r.db.Model(&model.Coupon{}).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var coupons []model.Coupon
	if err := query.Find(&coupons).Error; err != nil {
		logger.Error("Failed to find coupons in database", err, nil)
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) Update(coupon *model.Coupon) error {
	if err := r.db.Save(coupon).Error; err != nil {
		logger.Error("Failed to update coupon in database", err, map[string]interface{}{
			"coupon_id": coupon.ID,
		})
		return err
	}
	return nil
}

func (r *couponRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Coupon{}, id).Error; err != nil {
		logger.Error("Failed to delete coupon from database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}

func (r *couponRepository) IncrementUsage(id uint) error {
	if err := r.db.Model(&model.Coupon{}).Where("id = ?", id).
		Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
		logger.Error("Failed to increment coupon usage in database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}
