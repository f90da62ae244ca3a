package config

import (
	"errors"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"personnel_admin/internal/models"
)

// PermissionCatalog is every capability the route table guards with.
var PermissionCatalog = []string{
	"user_index", "user_show", "user_create", "user_update", "user_destroy", "user_block",
	"employee_index", "employee_show", "employee_create", "employee_update", "employee_destroy", "employee_block",
	"rider_index", "rider_show", "rider_create", "rider_update", "rider_destroy", "rider_block",
	"role_index",
	"document_index", "document_create", "document_destroy",
}

var readOnlyPermissions = []string{
	"user_index", "user_show",
	"employee_index", "employee_show",
	"rider_index", "rider_show",
	"role_index", "document_index",
}

// Seed inserts the permission catalog, the two stock roles and a bootstrap
// system admin. Safe to run on every startup.
func Seed(db *gorm.DB) error {
	for _, name := range PermissionCatalog {
		var existing models.Permission
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Permission{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	if err := seedRole(db, "administrador", PermissionCatalog); err != nil {
		return err
	}
	if err := seedRole(db, "operador", readOnlyPermissions); err != nil {
		return err
	}

	return seedAdminUser(db)
}

func seedRole(db *gorm.DB, name string, permissionNames []string) error {
	var role models.Role
	err := db.Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role = models.Role{Name: name}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		logrus.WithField("role", name).Info("seeded role")
	} else if err != nil {
		return err
	}

	var permissions []models.Permission
	if err := db.Where("name IN ?", permissionNames).Find(&permissions).Error; err != nil {
		return err
	}
	return db.Model(&role).Association("Permissions").Replace(permissions)
}

func seedAdminUser(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "admin@example.com")

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword(
		[]byte(getEnv("ADMIN_PASSWORD", "changeme123")), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:       email,
		Alias:       getEnv("ADMIN_ALIAS", "admin"),
		Password:    string(hash),
		Enabled:     true,
		SystemAdmin: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("email", email).Info("seeded system admin user")
	return nil
}
