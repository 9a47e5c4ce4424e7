package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type IntegrationRepository interface {
	Create(integration *model.Integration) error
	FindByID(id uint) (*model.Integration, error)
	FindByPlatform(platform model.IntegrationPlatform) (*model.Integration, error)
	FindAll() ([]model.Integration, error)
	Update(integration *model.Integration) error
	Delete(id uint) error
}

type integrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) Create(integration *model.Integration) error {
	logger.Debug("Creating integration in database", map[string]interface{}{
		"platform": integration.Platform,
	})

	if err := r.db.Create(integration).Error; err != nil {
		logger.Error("Failed to create integration in database", err, map[string]interface{}{
			"platform": integration.Platform,
		})
		return err
	}
	return nil
}

func (r *integrationRepository) FindByID(id uint) (*model.Integration, error) {
	var integration model.Integration
	if err := r.db.First(&integration, id).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) FindByPlatform(platform model.IntegrationPlatform) (*model.Integration, error) {
	var integration model.Integration
	if err := r.db.Where("platform = ?", platform).First(&integration).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) FindAll() ([]model.Integration, error) {
	var integrations []model.Integration
	if err := r.db.Order("platform ASC").Find(&integrations).Error; err != nil {
		logger.Error("Failed to find integrations in database", err, nil)
		return nil, err
	}
	return integrations, nil
}

func (r *integrationRepository) Update(integration *model.Integration) error {
	if err := r.db.Save(integration).Error; err != nil {
		logger.Error("Failed to update integration in database", err, map[string]interface{}{
			"integration_id": integration.ID,
		})
		return err
	}
	return nil
}

func (r *integrationRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Integration{}, id).Error; err != nil {
		logger.Error("Failed to delete integration in database", err, map[string]interface{}{
			"integration_id": id,
		})
		return err
	}
	return nil
}
