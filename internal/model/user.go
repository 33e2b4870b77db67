package model

import "gorm.io/gorm"

// User is a login account. Employees link to it through Employee.UserID.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string `json:"email" gorm:"size:191"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         Role   `json:"role" gorm:"size:20;not null;default:employee"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}
