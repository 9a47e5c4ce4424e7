package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type WarehouseRepository interface {
	Create(warehouse *model.Warehouse) error
	FindByID(id uint) (*model.Warehouse, error)
	FindByCode(code string) (*model.Warehouse, error)
	FindAll() ([]model.Warehouse, error)
	Update(warehouse *model.Warehouse) error
	Delete(id uint) error
}

type warehouseRepository struct {
	db *gorm.DB
}

func NewWarehouseRepository(db *gorm.DB) WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(warehouse *model.Warehouse) error {
	logger.Debug("Creating warehouse in database", map[string]interface{}{
		"code": warehouse.Code,
		"name": warehouse.Name,
	})

	if err := r.db.Create(warehouse).Error; err != nil {
		logger.Error("Failed to create warehouse in database", err, map[string]interface{}{
			"code": warehouse.Code,
		})
		return err
	}
	return nil
}

func (r *warehouseRepository) FindByID(id uint) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.First(&warehouse, id).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) FindByCode(code string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	if err := r.db.Where("code = ?", code).First(&warehouse).Error; err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *warehouseRepository) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	if err := r.db.Order("code ASC").Find(&warehouses).Error; err != nil {
		logger.Error("Failed to find warehouses in database", err, nil)
		return nil, err
	}
	return warehouses, nil
}

func (r *warehouseRepository) Update(warehouse *model.Warehouse) error {
	if err := r.db.Save(warehouse).Error; err != nil {
		logger.Error("Failed to update warehouse in database", err, map[string]interface{}{
			"warehouse_id": warehouse.ID,
		})
		return err
	}
	return nil
}

func (r *warehouseRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Warehouse{}, id).Error; err != nil {
		logger.Error("Failed to delete warehouse in database", err, map[string]interface{}{
			"warehouse_id": id,
		})
		return err
	}
	return nil
}
