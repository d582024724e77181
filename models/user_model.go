package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"unique;not null" validate:"required,min=3"`
	Password  string `json:"-" gorm:"not null"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role" gorm:"default:'staff'"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
