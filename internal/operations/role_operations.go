package operations

import (
	"errors"

	"gorm.io/gorm"

	"personnel_admin/internal/models"
)

// ListRoles returns every role with its permission set, ordered by name.
func ListRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	err := db.Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func GetRole(db *gorm.DB, id uint) (*models.Role, error) {
	var role models.Role
	if err := db.Preload("Permissions").First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func GetRoleByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Preload("Permissions").Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}
