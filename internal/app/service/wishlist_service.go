package service

import (
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistService interface {
	GetUserWishlist(userID uint) ([]model.WishlistItem, error)
	// Toggle flips membership and reports whether the product is wishlisted
	// after the call.
	Toggle(userID, productID uint) (bool, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	Contains(userID, productID uint) (bool, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Fetching user wishlist", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return items, nil
}

func (s *wishlistService) Toggle(userID, productID uint) (bool, error) {
	logger.Info("Toggling wishlist item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	existing, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check wishlist membership", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}

	if existing != nil {
		if err := s.wishlistRepo.Delete(userID, productID); err != nil {
			return false, err
		}
		logger.Debug("Wishlist item removed by toggle", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, nil
	}

	if err := s.Add(userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) Add(userID, productID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot wishlist: product not found", map[string]interface{}{
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		return err
	}

	existing, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		// Adding twice is a no-op, not an error.
		return nil
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		logger.Error("Failed to create wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return err
	}

	logger.Info("Wishlist item added", map[string]interface{}{
		"wishlist_item_id": item.ID,
	})
	return nil
}

func (s *wishlistService) Remove(userID, productID uint) error {
	existing, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}
	if existing == nil {
		return ErrWishlistItemNotFound
	}

	return s.wishlistRepo.Delete(userID, productID)
}

func (s *wishlistService) Contains(userID, productID uint) (bool, error) {
	_, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
