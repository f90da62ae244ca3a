package models

import "time"

// User is a staff account. Disabled users keep their row but cannot
// authenticate; deletion is a separate, irreversible action.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Email       string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Alias       string `json:"alias" gorm:"uniqueIndex;size:50;not null"`
	Password    string `json:"-" gorm:"size:128;not null"`
	Enabled     bool   `json:"enabled" gorm:"not null"`
	SystemAdmin bool   `json:"system_admin" gorm:"not null;default:false"`
	RoleID      *uint  `json:"role_id" gorm:"index"`
	Role        *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	// Optimistic lock counter, bumped on every successful update.
	Version   uint      `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
