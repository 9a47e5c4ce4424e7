package service

import (
	"errors"

	"github.com/shopverse/shopverse-backend/internal/app/model"
	"github.com/shopverse/shopverse-backend/internal/app/repository"
	"github.com/shopverse/shopverse-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
)

type DepartmentService interface {
	CreateDepartment(department *model.Department) error
	GetDepartmentByID(id uint) (*model.Department, error)
	ListDepartments() ([]model.Department, error)
	UpdateDepartment(department *model.Department) error
	DeleteDepartment(id uint) error

	CreateEmployee(employee *model.Employee) error
	GetEmployeeByID(id uint) (*model.Employee, error)
	ListEmployees(departmentID *uint) ([]model.Employee, error)
	UpdateEmployee(employee *model.Employee) error
	DeleteEmployee(id uint) error
}

type departmentService struct {
	departmentRepo repository.DepartmentRepository
}

func NewDepartmentService(departmentRepo repository.DepartmentRepository) DepartmentService {
	return &departmentService{departmentRepo: departmentRepo}
}

func (s *departmentService) CreateDepartment(department *model.Department) error {
	logger.Info("Creating department", map[string]interface{}{
		"name": department.Name,
	})
	return s.departmentRepo.Create(department)
}

func (s *departmentService) GetDepartmentByID(id uint) (*model.Department, error) {
	department, err := s.departmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return department, nil
}

func (s *departmentService) ListDepartments() ([]model.Department, error) {
	return s.departmentRepo.FindAll()
}

func (s *departmentService) UpdateDepartment(department *model.Department) error {
	if _, err := s.GetDepartmentByID(department.ID); err != nil {
		return err
	}
	return s.departmentRepo.Update(department)
}

func (s *departmentService) DeleteDepartment(id uint) error {
	if _, err := s.GetDepartmentByID(id); err != nil {
		return err
	}
	return s.departmentRepo.Delete(id)
}

func (s *departmentService) CreateEmployee(employee *model.Employee) error {
	logger.Info("Creating employee", map[string]interface{}{
		"department_id": employee.DepartmentID,
		"email":         employee.Email,
	})

	if _, err := s.GetDepartmentByID(employee.DepartmentID); err != nil {
		return err
	}
	return s.departmentRepo.CreateEmployee(employee)
}

func (s *departmentService) GetEmployeeByID(id uint) (*model.Employee, error) {
	employee, err := s.departmentRepo.FindEmployeeByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func (s *departmentService) ListEmployees(departmentID *uint) ([]model.Employee, error) {
	return s.departmentRepo.FindEmployees(departmentID)
}

func (s *departmentService) UpdateEmployee(employee *model.Employee) error {
	if _, err := s.GetEmployeeByID(employee.ID); err != nil {
		return err
	}
	if employee.DepartmentID != 0 {
		if _, err := s.GetDepartmentByID(employee.DepartmentID); err != nil {
			return err
		}
	}
	return s.departmentRepo.UpdateEmployee(employee)
}

func (s *departmentService) DeleteEmployee(id uint) error {
	if _, err := s.GetEmployeeByID(id); err != nil {
		return err
	}
	return s.departmentRepo.DeleteEmployee(id)
}
