package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductVariantRepository interface {
	Create(variant *model.ProductVariant) error
	FindByID(id uint) (*model.ProductVariant, error)
	FindByProductID(productID uint) ([]model.ProductVariant, error)
	Update(variant *model.ProductVariant) error
	UpdateStock(id uint, quantity int) error
	Delete(id uint) error
}

type productVariantRepository struct {
	db *gorm.DB
}

func NewProductVariantRepository(db *gorm.DB) ProductVariantRepository {
	return &productVariantRepository{db: db}
}

func (r *productVariantRepository) Create(variant *model.ProductVariant) error {
	logger.Debug("Creating product variant", map[string]interface{}{
		"product_id": variant.ProductID,
		"name":       variant.Name,
		"value":      variant.Value,
	})

	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create product variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"name":       variant.Name,
		})
		return err
	}
	return nil
}

func (r *productVariantRepository) FindByID(id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := r.db.First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productVariantRepository) FindByProductID(productID uint) ([]model.ProductVariant, error) {
	var variants []model.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		logger.Error("Failed to find product variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *productVariantRepository) Update(variant *model.ProductVariant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update product variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

func (r *productVariantRepository) UpdateStock(id uint, quantity int) error {
	logger.Debug("Updating product variant stock", map[string]interface{}{
		"variant_id": id,
		"delta":      quantity,
	})

	result := r.db.Model(&model.ProductVariant{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to update product variant stock", result.Error, map[string]interface{}{
			"variant_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productVariantRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.ProductVariant{}, id).Error; err != nil {
		logger.Error("Failed to delete product variant", err, map[string]interface{}{
			"variant_id": id,
		})
		return err
	}
	return nil
}
