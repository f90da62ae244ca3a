// internal/models/rider.go
package models

import (
	"gorm.io/gorm"
)

// Rider is a courier record. Same personal/contact shape as Employee but a
// separate table with its own document links.
type Rider struct {
	gorm.Model
	Name                  string      `json:"name" binding:"required"`
	Surname               string      `json:"surname" binding:"required"`
	DNI                   string      `json:"dni" gorm:"size:20"`
	Address               string      `json:"address"`
	Email                 string      `json:"email" gorm:"uniqueIndex;size:120" binding:"required,email"`
	Locality              string      `json:"locality"`
	Phone                 string      `json:"phone"`
	ProfessionID          uint        `json:"profession_id" gorm:"index"`
	Profession            Profession  `gorm:"foreignKey:ProfessionID" json:"profession,omitempty"`
	JobPositionID         uint        `json:"job_position_id" gorm:"index"`
	JobPosition           JobPosition `gorm:"foreignKey:JobPositionID" json:"job_position,omitempty"`
	EmergencyContactName  string      `json:"emergency_contact_name"`
	EmergencyContactPhone string      `json:"emergency_contact_phone"`
	HealthPlan            string      `json:"health_plan"`
	AffiliateNumber       string      `json:"affiliate_number"`
	IsVolunteer           bool        `json:"is_volunteer" gorm:"not null;default:false"`
	Enabled               bool        `json:"enabled" gorm:"not null"`
	Version               uint        `json:"-" gorm:"not null;default:0"`

	Documents []Document `gorm:"many2many:rider_documents;" json:"documents,omitempty"`
}
