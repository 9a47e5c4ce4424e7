package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

type IntegrationController struct {
	integrationService service.IntegrationService
}

func NewIntegrationController(integrationService service.IntegrationService) *IntegrationController {
	return &IntegrationController{
		integrationService: integrationService,
	}
}

type ConnectIntegrationRequest struct {
	Platform  string `json:"platform" binding:"required"`
	StoreName string `json:"store_name" binding:"required"`
	APIKey    string `json:"api_key" binding:"required"`
}

// ListIntegrations returns all platform connection records
// GET /api/v1/admin/integrations
func (ctrl *IntegrationController) ListIntegrations(c *gin.Context) {
	integrations, err := ctrl.integrationService.ListIntegrations()
	if err != nil {
		logger.Error("Failed to list integrations", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get integrations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"integrations": integrations})
}

// ConnectIntegration connects an external platform
// POST /api/v1/admin/integrations
func (ctrl *IntegrationController) ConnectIntegration(c *gin.Context) {
	var req ConnectIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	integration, err := ctrl.integrationService.Connect(model.IntegrationPlatform(req.Platform), req.StoreName, req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlatform):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported platform"})
		case errors.Is(err, service.ErrPlatformConnected):
			c.JSON(http.StatusConflict, gin.H{"error": "Platform is already connected"})
		default:
			logger.Error("Failed to connect integration", err, map[string]interface{}{
				"platform": req.Platform,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect integration"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"integration": integration})
}

// DisconnectIntegration disconnects a platform, keeping the record
// DELETE /api/v1/admin/integrations/:id
func (ctrl *IntegrationController) DisconnectIntegration(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid integration ID"})
		return
	}

	if err := ctrl.integrationService.Disconnect(id); err != nil {
		if errors.Is(err, service.ErrIntegrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
			return
		}
		logger.Error("Failed to disconnect integration", err, map[string]interface{}{
			"integration_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect integration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Integration disconnected successfully"})
}
