package model

import (
	"time"

	"gorm.io/gorm"
)

type Warehouse struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"not null" json:"name"`
	Location  string         `json:"location"`
	Capacity  int            `gorm:"default:0" json:"capacity"`
	Manager   string         `json:"manager"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Warehouse) TableName() string {
	return "warehouses"
}
