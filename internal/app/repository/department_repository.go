package repository

import (
	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(department *model.Department) error
	FindByID(id uint) (*model.Department, error)
	FindAll() ([]model.Department, error)
	Update(department *model.Department) error
	Delete(id uint) error

	CreateEmployee(employee *model.Employee) error
	FindEmployeeByID(id uint) (*model.Employee, error)
	FindEmployees(departmentID *uint) ([]model.Employee, error)
	UpdateEmployee(employee *model.Employee) error
	DeleteEmployee(id uint) error
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(department *model.Department) error {
	logger.Debug("Creating department in database", map[string]interface{}{
		"name": department.Name,
	})

	if err := r.db.Create(department).Error; err != nil {
		logger.Error("Failed to create department in database", err, map[string]interface{}{
			"name": department.Name,
		})
		return err
	}
	return nil
}

func (r *departmentRepository) FindByID(id uint) (*model.Department, error) {
	var department model.Department
	if err := r.db.Preload("Employees").First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll() ([]model.Department, error) {
	var departments []model.Department
	if err := r.db.Preload("Employees").Order("name ASC").Find(&departments).Error; err != nil {
		logger.Error("Failed to find departments in database", err, nil)
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(department *model.Department) error {
	if err := r.db.Save(department).Error; err != nil {
		logger.Error("Failed to update department in database", err, map[string]interface{}{
			"department_id": department.ID,
		})
		return err
	}
	return nil
}

func (r *departmentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Department{}, id).Error; err != nil {
		logger.Error("Failed to delete department in database", err, map[string]interface{}{
			"department_id": id,
		})
		return err
	}
	return nil
}

func (r *departmentRepository) CreateEmployee(employee *model.Employee) error {
	logger.Debug("Creating employee in database", map[string]interface{}{
		"department_id": employee.DepartmentID,
		"email":         employee.Email,
	})

	if err := r.db.Create(employee).Error; err != nil {
		logger.Error("Failed to create employee in database", err, map[string]interface{}{
			"email": employee.Email,
		})
		return err
	}
	return nil
}

func (r *departmentRepository) FindEmployeeByID(id uint) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Preload("Department").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *departmentRepository) FindEmployees(departmentID *uint) ([]model.Employee, error) {
	query := r.db.Preload("Department").Order("name ASC")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var employees []model.Employee
	if err := query.Find(&employees).Error; err != nil {
		logger.Error("Failed to find employees in database", err, nil)
		return nil, err
	}
	return employees, nil
}

func (r *departmentRepository) UpdateEmployee(employee *model.Employee) error {
	if err := r.db.Save(employee).Error; err != nil {
		logger.Error("Failed to update employee in database", err, map[string]interface{}{
			"employee_id": employee.ID,
		})
		return err
	}
	return nil
}

func (r *departmentRepository) DeleteEmployee(id uint) error {
	if err := r.db.Delete(&model.Employee{}, id).Error; err != nil {
		logger.Error("Failed to delete employee in database", err, map[string]interface{}{
			"employee_id": id,
		})
		return err
	}
	return nil
}
