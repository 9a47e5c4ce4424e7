package service

import (
	"errors"
	"strings"
	"time"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrIntegrationNotFound = errors.New("integration not found")
	ErrPlatformConnected   = errors.New("platform already connected")
	ErrInvalidPlatform     = errors.New("invalid integration platform")
)

type IntegrationService interface {
	// Connect records a platform connection. The raw API key is masked
	// immediately and never stored.
	Connect(platform model.IntegrationPlatform, storeName, apiKey string) (*model.Integration, error)
	Disconnect(id uint) error
	GetIntegrationByID(id uint) (*model.Integration, error)
	ListIntegrations() ([]model.Integration, error)
}

type integrationService struct {
	integrationRepo repository.IntegrationRepository
}

func NewIntegrationService(integrationRepo repository.IntegrationRepository) IntegrationService {
	return &integrationService{integrationRepo: integrationRepo}
}

func isValidPlatform(platform model.IntegrationPlatform) bool {
	switch platform {
	case model.PlatformAmazon, model.PlatformShopify, model.PlatformEbay,
		model.PlatformWalmart, model.PlatformFlipkart, model.PlatformWooCommerce,
		model.PlatformRazorpay, model.PlatformWhatsApp:
		return true
	}
	return false
}

// maskAPIKey keeps the last four characters of a key, replacing the rest
// with asterisks.
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func (s *integrationService) Connect(platform model.IntegrationPlatform, storeName, apiKey string) (*model.Integration, error) {
	logger.Info("Connecting integration", map[string]interface{}{
		"platform":   platform,
		"store_name": storeName,
	})

	if !isValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}

	existing, err := s.integrationRepo.FindByPlatform(platform)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		if existing.Status == model.IntegrationConnected {
			logger.Warn("Platform already connected", map[string]interface{}{
				"platform": platform,
			})
			return nil, ErrPlatformConnected
		}
		existing.StoreName = storeName
		existing.APIKeyMasked = maskAPIKey(apiKey)
		existing.Status = model.IntegrationConnected
		existing.ConnectedAt = &now
		if err := s.integrationRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	integration := &model.Integration{
		Platform:     platform,
		StoreName:    storeName,
		APIKeyMasked: maskAPIKey(apiKey),
		Status:       model.IntegrationConnected,
		ConnectedAt:  &now,
	}
	if err := s.integrationRepo.Create(integration); err != nil {
		logger.Error("Failed to create integration", err, map[string]interface{}{
			"platform": platform,
		})
		return nil, err
	}
	return integration, nil
}

func (s *integrationService) Disconnect(id uint) error {
	logger.Info("Disconnecting integration", map[string]interface{}{
		"integration_id": id,
	})

	integration, err := s.integrationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIntegrationNotFound
		}
		return err
	}

	integration.Status = model.IntegrationDisconnected
	integration.ConnectedAt = nil
	return s.integrationRepo.Update(integration)
}

func (s *integrationService) GetIntegrationByID(id uint) (*model.Integration, error) {
	integration, err := s.integrationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrationNotFound
		}
		return nil, err
	}
	return integration, nil
}

func (s *integrationService) ListIntegrations() ([]model.Integration, error) {
	return s.integrationRepo.FindAll()
}
