package model

import "gorm.io/gorm"

type Employee struct {
	gorm.Model
	EmployeeCode string `json:"employee_code" gorm:"uniqueIndex;size:50;not null"`
	Name         string `json:"name" gorm:"size:191;not null"`
	Email        string `json:"email" gorm:"size:191"`
	Phone        string `json:"phone" gorm:"size:50"`
	Address      string `json:"address"`
	Department   string `json:"department" gorm:"size:100;index"`
	Position     string `json:"position" gorm:"size:100"`
	HireDate     string `json:"hire_date" gorm:"size:10"` // YYYY-MM-DD
	UserID       *uint  `json:"user_id" gorm:"uniqueIndex"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
