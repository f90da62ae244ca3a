package models

import "gorm.io/gorm"

type Profession struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:80;not null" binding:"required"`
}

type JobPosition struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;size:80;not null" binding:"required"`
}
