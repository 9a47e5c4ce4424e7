package service

import (
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWarehouseNotFound   = errors.New("warehouse not found")
	ErrWarehouseCodeTaken  = errors.New("warehouse code already in use")
	ErrInvalidWarehouseDef = errors.New("invalid warehouse definition")
)

type WarehouseService interface {
	CreateWarehouse(warehouse *model.Warehouse) error
	GetWarehouseByID(id uint) (*model.Warehouse, error)
	ListWarehouses() ([]model.Warehouse, error)
	UpdateWarehouse(warehouse *model.Warehouse) error
	DeleteWarehouse(id uint) error
}

type warehouseService struct {
	warehouseRepo repository.WarehouseRepository
}

func NewWarehouseService(warehouseRepo repository.WarehouseRepository) WarehouseService {
	return &warehouseService{warehouseRepo: warehouseRepo}
}

func (s *warehouseService) CreateWarehouse(warehouse *model.Warehouse) error {
	logger.Info("Creating warehouse", map[string]interface{}{
		"code": warehouse.Code,
	})

	if warehouse.Code == "" || warehouse.Name == "" {
		return ErrInvalidWarehouseDef
	}

	existing, err := s.warehouseRepo.FindByCode(warehouse.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		logger.Warn("Warehouse code already in use", map[string]interface{}{
			"code": warehouse.Code,
		})
		return ErrWarehouseCodeTaken
	}

	return s.warehouseRepo.Create(warehouse)
}

func (s *warehouseService) GetWarehouseByID(id uint) (*model.Warehouse, error) {
	warehouse, err := s.warehouseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) ListWarehouses() ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll()
}

func (s *warehouseService) UpdateWarehouse(warehouse *model.Warehouse) error {
	logger.Info("Updating warehouse", map[string]interface{}{
		"warehouse_id": warehouse.ID,
	})

	existing, err := s.warehouseRepo.FindByID(warehouse.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWarehouseNotFound
		}
		return err
	}

	if warehouse.Code != "" && warehouse.Code != existing.Code {
		other, err := s.warehouseRepo.FindByCode(warehouse.Code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if other != nil {
			return ErrWarehouseCodeTaken
		}
	}

	return s.warehouseRepo.Update(warehouse)
}

func (s *warehouseService) DeleteWarehouse(id uint) error {
	logger.Info("Deleting warehouse", map[string]interface{}{
		"warehouse_id": id,
	})

	if _, err := s.warehouseRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWarehouseNotFound
		}
		return err
	}

	return s.warehouseRepo.Delete(id)
}
