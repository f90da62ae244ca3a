package models

import "gorm.io/gorm"

// Permission is a named capability, e.g. "user_destroy" or "employee_update".
// Roles bundle permissions; users get them through their role.
type Permission struct {
	gorm.Model
	Name  string `json:"name" gorm:"uniqueIndex;size:60;not null"`
	Roles []Role `gorm:"many2many:role_permissions;" json:"-"`
}
