package service

import (
	"errors"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponNotActive  = errors.New("coupon is not active")
	ErrCouponExhausted  = errors.New("coupon usage limit reached")
	ErrCouponMinNotMet  = errors.New("order amount below coupon minimum")
	ErrInvalidCouponDef = errors.New("invalid coupon definition")
)

// CouponQuote is the result of checking a coupon against a cart subtotal
// before checkout.
type CouponQuote struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type CouponService interface {
	CreateCoupon(coupon *model.Coupon) error
	GetCouponByID(id uint) (*model.Coupon, error)
	ListCoupons(limit, offset int) ([]model.Coupon, error)
	UpdateCoupon(coupon *model.Coupon) error
	DeleteCoupon(id uint) error
	// Quote validates the coupon against a subtotal without consuming a use.
	Quote(code string, subtotal float64) (*CouponQuote, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func validateCouponDefinition(coupon *model.Coupon) error {
	if coupon.Code == "" {
		return ErrInvalidCouponDef
	}
	switch coupon.Type {
	case model.CouponTypePercent:
		if coupon.Value <= 0 || coupon.Value > 100 {
			return ErrInvalidCouponDef
		}
	case model.CouponTypeFixed:
		if coupon.Value <= 0 {
			return ErrInvalidCouponDef
		}
	default:
		return ErrInvalidCouponDef
	}
	if !coupon.ExpiresAt.IsZero() && !coupon.StartsAt.IsZero() && coupon.ExpiresAt.Before(coupon.StartsAt) {
		return ErrInvalidCouponDef
	}
	return nil
}

func (s *couponService) CreateCoupon(coupon *model.Coupon) error {
	logger.Info("Creating coupon", map[string]interface{}{
		"code": coupon.Code,
		"type": coupon.Type,
	})

	if err := validateCouponDefinition(coupon); err != nil {
		logger.Warn("Rejected coupon definition", map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		logger.Error("Failed to create coupon", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (s *couponService) GetCouponByID(id uint) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) ListCoupons(limit, offset int) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.FindAll(limit, offset)
	if err != nil {
		logger.Error("Failed to list coupons", err)
		return nil, err
	}
	return coupons, nil
}

func (s *couponService) UpdateCoupon(coupon *model.Coupon) error {
	logger.Info("Updating coupon", map[string]interface{}{
		"coupon_id": coupon.ID,
	})

	if err := validateCouponDefinition(coupon); err != nil {
		return err
	}

	if _, err := s.couponRepo.FindByID(coupon.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		return err
	}

	return s.couponRepo.Update(coupon)
}

func (s *couponService) DeleteCoupon(id uint) error {
	logger.Info("Deleting coupon", map[string]interface{}{
		"coupon_id": id,
	})

	if _, err := s.couponRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		return err
	}

	return s.couponRepo.Delete(id)
}

func (s *couponService) Quote(code string, subtotal float64) (*CouponQuote, error) {
	logger.Debug("Quoting coupon", map[string]interface{}{
		"code":     code,
		"subtotal": subtotal,
	})

	coupon, err := s.couponRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !coupon.Active || now.Before(coupon.StartsAt) || now.After(coupon.ExpiresAt) {
		return nil, ErrCouponNotActive
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, ErrCouponExhausted
	}
	if subtotal < coupon.MinOrderAmount {
		return nil, ErrCouponMinNotMet
	}

	discount := coupon.DiscountFor(subtotal)
	return &CouponQuote{
		Code:     coupon.Code,
		Discount: discount,
		Total:    subtotal - discount,
	}, nil
}
