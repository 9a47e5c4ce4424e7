package model

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Head      string         `json:"head"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Employees []Employee `gorm:"foreignKey:DepartmentID" json:"employees,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

// Employee is a back-office staff record with its salary, listed on the
// departments and salaries admin screens.
type Employee struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	DepartmentID uint           `gorm:"not null;index" json:"department_id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Position     string         `json:"position"`
	Salary       float64        `gorm:"default:0" json:"salary"`
	JoinedAt     time.Time      `json:"joined_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
