package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	apperrors "github.com/shopverse/shopverse-backend/internal/errors"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

type WarehouseController struct {
	warehouseService service.WarehouseService
}

func NewWarehouseController(warehouseService service.WarehouseService) *WarehouseController {
	return &WarehouseController{
		warehouseService: warehouseService,
	}
}

type WarehouseRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity"`
	Manager  string `json:"manager"`
	Active   *bool  `json:"active"`
}

// ListWarehouses returns all warehouses ordered by code
// GET /api/v1/admin/warehouses
func (ctrl *WarehouseController) ListWarehouses(c *gin.Context) {
	warehouses, err := ctrl.warehouseService.ListWarehouses()
	if err != nil {
		logger.Error("Failed to list warehouses", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get warehouses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
}

// GetWarehouse returns a single warehouse
// GET /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) GetWarehouse(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	warehouse, err := ctrl.warehouseService.GetWarehouseByID(id)
	if err != nil {
		if errors.Is(err, service.ErrWarehouseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
			return
		}
		logger.Error("Failed to get warehouse", err, map[string]interface{}{
			"warehouse_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get warehouse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouse": warehouse})
}

// CreateWarehouse creates a warehouse
// POST /api/v1/admin/warehouses
func (ctrl *WarehouseController) CreateWarehouse(c *gin.Context) {
	var req WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	warehouse := &model.Warehouse{
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Manager:  req.Manager,
		Active:   true,
	}
	if req.Active != nil {
		warehouse.Active = *req.Active
	}

	if err := ctrl.warehouseService.CreateWarehouse(warehouse); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWarehouseDef):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse definition"})
		case errors.Is(err, service.ErrWarehouseCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Warehouse code already in use"})
		default:
			logger.Error("Failed to create warehouse", err, map[string]interface{}{
				"code": req.Code,
			})
			info := apperrors.ParseError(err, "create warehouse")
			apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"warehouse": warehouse})
}

// UpdateWarehouse updates a warehouse
// PUT /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) UpdateWarehouse(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	var req WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	warehouse := &model.Warehouse{
		ID:       id,
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Manager:  req.Manager,
		Active:   true,
	}
	if req.Active != nil {
		warehouse.Active = *req.Active
	}

	if err := ctrl.warehouseService.UpdateWarehouse(warehouse); err != nil {
		switch {
		case errors.Is(err, service.ErrWarehouseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
		case errors.Is(err, service.ErrInvalidWarehouseDef):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse definition"})
		case errors.Is(err, service.ErrWarehouseCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Warehouse code already in use"})
		default:
			logger.Error("Failed to update warehouse", err, map[string]interface{}{
				"warehouse_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update warehouse"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"warehouse": warehouse})
}

// DeleteWarehouse deletes a warehouse
// DELETE /api/v1/admin/warehouses/:id
func (ctrl *WarehouseController) DeleteWarehouse(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouse ID"})
		return
	}

	if err := ctrl.warehouseService.DeleteWarehouse(id); err != nil {
		if errors.Is(err, service.ErrWarehouseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warehouse not found"})
			return
		}
		logger.Error("Failed to delete warehouse", err, map[string]interface{}{
			"warehouse_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete warehouse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Warehouse deleted successfully"})
}
