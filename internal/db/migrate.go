package db

import (
	"os"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"github.com/shopverse/shopverse-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Product{},
		&model.ProductVariant{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Coupon{},
		&model.Notification{},
		&model.Warehouse{},
		&model.Department{},
		&model.Employee{},
		&model.Integration{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedAdminUser(); err != nil {
		logger.Error("Failed to seed admin user", err)
		return err
	}

	if err := seedWarehouses(); err != nil {
		logger.Error("Failed to seed warehouses", err)
		return err
	}

	if err := seedCoupons(); err != nil {
		logger.Error("Failed to seed coupons", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the back-office admin account on first boot.
func seedAdminUser() error {
	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Admin user already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@shopverse.io"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
		logger.Warn("ADMIN_PASSWORD not set, using default password", map[string]interface{}{
			"email": email,
		})
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Store Admin",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Admin user seeded successfully", map[string]interface{}{
		"email": email,
	})
	return nil
}

func seedWarehouses() error {
	var count int64
	if err := DB.Model(&model.Warehouse{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Warehouses already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	warehouses := []model.Warehouse{
		{Code: "WH-EAST", Name: "East Fulfillment Center", Location: "Newark, NJ", Capacity: 50000, Active: true},
		{Code: "WH-WEST", Name: "West Fulfillment Center", Location: "Reno, NV", Capacity: 40000, Active: true},
		{Code: "WH-CENTRAL", Name: "Central Distribution Hub", Location: "Dallas, TX", Capacity: 65000, Active: true},
	}

	for _, warehouse := range warehouses {
		if err := DB.Create(&warehouse).Error; err != nil {
			logger.Error("Failed to create warehouse", err, map[string]interface{}{
				"code": warehouse.Code,
			})
			return err
		}
	}

	logger.Info("Warehouses seeded successfully", map[string]interface{}{
		"total_warehouses": len(warehouses),
	})
	return nil
}

func seedCoupons() error {
	var count int64
	if err := DB.Model(&model.Coupon{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Coupons already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	now := time.Now()
	coupons := []model.Coupon{
		{
			Code:        "WELCOME10",
			Type:        model.CouponTypePercent,
			Value:       10,
			UsageLimit:  1000,
			StartsAt:    now,
			ExpiresAt:   now.AddDate(0, 3, 0),
			Active:      true,
			Description: "10% off your first order",
		},
		{
			Code:           "SAVE20",
			Type:           model.CouponTypeFixed,
			Value:          20,
			MinOrderAmount: 100,
			UsageLimit:     500,
			StartsAt:       now,
			ExpiresAt:      now.AddDate(0, 1, 0),
			Active:         true,
			Description:    "$20 off orders over $100",
		},
	}

	for _, coupon := range coupons {
		if err := DB.Create(&coupon).Error; err != nil {
			logger.Error("Failed to create coupon", err, map[string]interface{}{
				"code": coupon.Code,
			})
			return err
		}
	}

	logger.Info("Coupons seeded successfully", map[string]interface{}{
		"total_coupons": len(coupons),
	})
	return nil
}
