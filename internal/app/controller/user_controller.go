package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/internal/middleware"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ListUsers returns users, optionally filtered by role
// GET /api/v1/admin/users?role=customer&limit=20&offset=0
func (ctrl *UserController) ListUsers(c *gin.Context) {
	var role *model.UserRole
	if raw := c.Query("role"); raw != "" {
		r := model.UserRole(raw)
		role = &r
	}
	limit, offset := parsePagination(c)

	users, err := ctrl.userService.ListUsers(role, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role filter"})
			return
		}
		logger.Error("Failed to list users", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser returns a single user account
// GET /api/v1/admin/users/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := ctrl.userService.GetUserByID(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to get user", err, map[string]interface{}{
			"user_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateUserRole changes a user's role
// PUT /api/v1/admin/users/:id/role
func (ctrl *UserController) UpdateUserRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := ctrl.userService.UpdateRole(id, model.UserRole(req.Role)); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		default:
			logger.Error("Failed to update user role", err, map[string]interface{}{
				"user_id": id,
				"role":    req.Role,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

// DeleteUser deletes a user account
// DELETE /api/v1/admin/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// Admins cannot delete their own account
	if callerID, ok := middleware.GetUserID(c); ok && callerID == id {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete your own account"})
		return
	}

	if err := ctrl.userService.DeleteUser(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
