package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/service"
	"github.com/shopverse/shopverse-backend/pkg/logger"
)

type DepartmentController struct {
	departmentService service.DepartmentService
}

func NewDepartmentController(departmentService service.DepartmentService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
	}
}

type DepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Head string `json:"head"`
}

type EmployeeRequest struct {
	DepartmentID uint    `json:"department_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Position     string  `json:"position"`
	Salary       float64 `json:"salary"`
	JoinedAt     string  `json:"joined_at"` // RFC 3339 date, defaults to now
}

// ListDepartments returns all departments with their employees
// GET /api/v1/admin/departments
func (ctrl *DepartmentController) ListDepartments(c *gin.Context) {
	departments, err := ctrl.departmentService.ListDepartments()
	if err != nil {
		logger.Error("Failed to list departments", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get departments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

// GetDepartment returns a single department with its employees
// GET /api/v1/admin/departments/:id
func (ctrl *DepartmentController) GetDepartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	department, err := ctrl.departmentService.GetDepartmentByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to get department", err, map[string]interface{}{
			"department_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"department": department})
}

// CreateDepartment creates a department
// POST /api/v1/admin/departments
func (ctrl *DepartmentController) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	department := &model.Department{
		Name: req.Name,
		Head: req.Head,
	}

	if err := ctrl.departmentService.CreateDepartment(department); err != nil {
		logger.Error("Failed to create department", err, map[string]interface{}{
			"name": req.Name,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create department"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"department": department})
}

// UpdateDepartment updates a department
// PUT /api/v1/admin/departments/:id
func (ctrl *DepartmentController) UpdateDepartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	department := &model.Department{
		ID:   id,
		Name: req.Name,
		Head: req.Head,
	}

	if err := ctrl.departmentService.UpdateDepartment(department); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to update department", err, map[string]interface{}{
			"department_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"department": department})
}

// DeleteDepartment deletes a department
// DELETE /api/v1/admin/departments/:id
func (ctrl *DepartmentController) DeleteDepartment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
		return
	}

	if err := ctrl.departmentService.DeleteDepartment(id); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to delete department", err, map[string]interface{}{
			"department_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

// ListEmployees returns employees, optionally filtered by department
// GET /api/v1/admin/employees?department_id=1
func (ctrl *DepartmentController) ListEmployees(c *gin.Context) {
	var departmentID *uint
	if raw := c.Query("department_id"); raw != "" {
		id, err := parseIDValue(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department ID"})
			return
		}
		departmentID = &id
	}

	employees, err := ctrl.departmentService.ListEmployees(departmentID)
	if err != nil {
		logger.Error("Failed to list employees", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

// CreateEmployee creates an employee in a department
// POST /api/v1/admin/employees
func (ctrl *DepartmentController) CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	joinedAt := time.Now()
	if req.JoinedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.JoinedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid joined_at date"})
			return
		}
		joinedAt = parsed
	}

	employee := &model.Employee{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		Salary:       req.Salary,
		JoinedAt:     joinedAt,
	}

	if err := ctrl.departmentService.CreateEmployee(employee); err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
			return
		}
		logger.Error("Failed to create employee", err, map[string]interface{}{
			"email": req.Email,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// UpdateEmployee updates an employee record
// PUT /api/v1/admin/employees/:id
func (ctrl *DepartmentController) UpdateEmployee(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	existing, err := ctrl.departmentService.GetEmployeeByID(id)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to get employee", err, map[string]interface{}{
			"employee_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	employee := &model.Employee{
		ID:           id,
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		Email:        req.Email,
		Position:     req.Position,
		Salary:       req.Salary,
		JoinedAt:     existing.JoinedAt,
	}
	if req.JoinedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.JoinedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid joined_at date"})
			return
		}
		employee.JoinedAt = parsed
	}

	if err := ctrl.departmentService.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, service.ErrEmployeeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		case errors.Is(err, service.ErrDepartmentNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department not found"})
		default:
			logger.Error("Failed to update employee", err, map[string]interface{}{
				"employee_id": id,
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// DeleteEmployee deletes an employee record
// DELETE /api/v1/admin/employees/:id
func (ctrl *DepartmentController) DeleteEmployee(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	if err := ctrl.departmentService.DeleteEmployee(id); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		logger.Error("Failed to delete employee", err, map[string]interface{}{
			"employee_id": id,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}
