package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type WishlistRepository interface {
	Create(item *model.WishlistItem) error
	FindByUserID(userID uint) ([]model.WishlistItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error)
	Delete(userID, productID uint) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(item *model.WishlistItem) error {
	logger.Debug("Creating wishlist item in database", map[string]interface{}{
		"user_id":    item.UserID,
		"product_id": item.ProductID,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create wishlist item in database", err, map[string]interface{}{
			"user_id":    item.UserID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *wishlistRepository) FindByUserID(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Finding wishlist items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var items []model.WishlistItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find wishlist items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Wishlist items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

func (r *wishlistRepository) FindByUserAndProduct(userID, productID uint) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) Delete(userID, productID uint) error {
	logger.Debug("Deleting wishlist item from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{}).Error; err != nil {
		logger.Error("Failed to delete wishlist item from database", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}
	return nil
}
