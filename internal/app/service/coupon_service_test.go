package service

import (
	"testing"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (CouponService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	couponRepo := repository.NewCouponRepository(testDB)
	return NewCouponService(couponRepo), testDB
}

func activeCoupon(code string, ctype model.CouponType, value, minAmount float64) *model.Coupon {
	return &model.Coupon{
		Code:           code,
		Type:           ctype,
		Value:          value,
		MinOrderAmount: minAmount,
		StartsAt:       time.Now().Add(-time.Hour),
		ExpiresAt:      time.Now().Add(24 * time.Hour),
		Active:         true,
	}
}

func TestCouponService_CreateCoupon_Valid(t *testing.T) {
	couponService, _ := setupCouponServiceTest(t)

	err := couponService.CreateCoupon(activeCoupon("SPRING15", model.CouponTypePercent, 15, 0))
	assert.NoError(t, err)
}

func TestCouponService_CreateCoupon_InvalidDefinitions(t *testing.T) {
	couponService, _ := setupCouponServiceTest(t)

	// Percent over 100
	err := couponService.CreateCoupon(activeCoupon("TOOMUCH", model.CouponTypePercent, 150, 0))
	assert.ErrorIs(t, err, ErrInvalidCouponDef)

	// Non-positive fixed value
	err = couponService.CreateCoupon(activeCoupon("FREE", model.CouponTypeFixed, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidCouponDef)

	// Expiry before start
	backwards := activeCoupon("BACKWARDS", model.CouponTypeFixed, 10, 0)
	backwards.ExpiresAt = backwards.StartsAt.Add(-time.Hour)
	err = couponService.CreateCoupon(backwards)
	assert.ErrorIs(t, err, ErrInvalidCouponDef)
}

func TestCouponService_Quote_Percent(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)
	require.NoError(t, testDB.Create(activeCoupon("TEN", model.CouponTypePercent, 10, 0)).Error)

	quote, err := couponService.Quote("TEN", 200)
	require.NoError(t, err)
	assert.Equal(t, 20.0, quote.Discount)
	assert.Equal(t, 180.0, quote.Total)
}

func TestCouponService_Quote_FixedCappedAtSubtotal(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)
	require.NoError(t, testDB.Create(activeCoupon("BIGFIX", model.CouponTypeFixed, 50, 0)).Error)

	// A fixed discount never pushes the total below zero
	quote, err := couponService.Quote("BIGFIX", 30)
	require.NoError(t, err)
	assert.Equal(t, 30.0, quote.Discount)
	assert.Equal(t, 0.0, quote.Total)
}

func TestCouponService_Quote_MinimumNotMet(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)
	require.NoError(t, testDB.Create(activeCoupon("MIN100", model.CouponTypeFixed, 10, 100)).Error)

	_, err := couponService.Quote("MIN100", 50)
	assert.ErrorIs(t, err, ErrCouponMinNotMet)
}

func TestCouponService_Quote_NotFound(t *testing.T) {
	couponService, _ := setupCouponServiceTest(t)

	_, err := couponService.Quote("NOPE", 100)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponService_Quote_Inactive(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)

	inactive := activeCoupon("PAUSED", model.CouponTypePercent, 10, 0)
	inactive.Active = false
	require.NoError(t, testDB.Create(inactive).Error)

	_, err := couponService.Quote("PAUSED", 100)
	assert.ErrorIs(t, err, ErrCouponNotActive)
}

func TestCouponService_Quote_Exhausted(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)

	spent := activeCoupon("SPENT", model.CouponTypePercent, 10, 0)
	spent.UsageLimit = 5
	spent.UsedCount = 5
	require.NoError(t, testDB.Create(spent).Error)

	_, err := couponService.Quote("SPENT", 100)
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCouponService_Quote_DoesNotConsumeUse(t *testing.T) {
	couponService, testDB := setupCouponServiceTest(t)

	limited := activeCoupon("ONCE", model.CouponTypePercent, 10, 0)
	limited.UsageLimit = 1
	require.NoError(t, testDB.Create(limited).Error)

	_, err := couponService.Quote("ONCE", 100)
	require.NoError(t, err)
	_, err = couponService.Quote("ONCE", 100)
	assert.NoError(t, err)

	var refreshed model.Coupon
	require.NoError(t, testDB.Where("code = ?", "ONCE").First(&refreshed).Error)
	assert.Equal(t, 0, refreshed.UsedCount)
}
