package operations

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"personnel_admin/internal/models"
	"personnel_admin/internal/query"
)

// SortableUsers is the closed set of attributes user listings may be
// ordered by.
var SortableUsers = query.Sortable{
	"email":      "email",
	"alias":      "alias",
	"enabled":    "enabled",
	"created_at": "created_at",
}

type CreateUserInput struct {
	Email       string
	Alias       string
	Password    string
	RoleID      *uint
	Enabled     *bool
	SystemAdmin bool
}

type UpdateUserInput struct {
	Email       *string
	Alias       *string
	Password    *string
	Enabled     *bool
	RoleID      *uint
	SystemAdmin *bool
}

// IdentityChange reports whether the input touches the target's private
// fields. Used by the self-service rule: only the owner may change these.
func (in UpdateUserInput) IdentityChange() bool {
	return in.Email != nil || in.Alias != nil || in.Password != nil
}

// PrivilegeChange reports whether the input touches fields that grant or
// revoke access.
func (in UpdateUserInput) PrivilegeChange() bool {
	return in.Enabled != nil || in.RoleID != nil || in.SystemAdmin != nil
}

// CreateUser validates, hashes the password and inserts. Uniqueness of email
// and alias is checked before any write.
func CreateUser(db *gorm.DB, input CreateUserInput, checkDomain bool) (*models.User, error) {
	if err := ValidateEmail(input.Email, checkDomain); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if taken, err := userFieldTaken(db, "email", input.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}
	if taken, err := userFieldTaken(db, "alias", input.Alias, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       input.Email,
		Alias:       input.Alias,
		Password:    string(hash),
		Enabled:     true,
		SystemAdmin: input.SystemAdmin,
		RoleID:      input.RoleID,
	}
	if input.Enabled != nil {
		user.Enabled = *input.Enabled
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user or nil when absent.
func GetUser(db *gorm.DB, id uint) (*models.User, error) {
	return firstUser(db.Preload("Role.Permissions").Where("id = ?", id))
}

func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	return firstUser(db.Preload("Role.Permissions").Where("email = ?", email))
}

func GetUserByAlias(db *gorm.DB, alias string) (*models.User, error) {
	return firstUser(db.Preload("Role.Permissions").Where("alias = ?", alias))
}

func firstUser(db *gorm.DB) (*models.User, error) {
	var user models.User
	if err := db.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser merges the non-nil input fields into the stored record. The
// write carries the version read at load time; a concurrent update makes it
// match zero rows and the call fails with ErrStaleRecord.
func UpdateUser(db *gorm.DB, id uint, input UpdateUserInput, checkDomain bool) (*models.User, error) {
	user, err := GetUser(db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	fields := map[string]any{}
	if input.Email != nil && *input.Email != user.Email {
		if err := ValidateEmail(*input.Email, checkDomain); err != nil {
			return nil, err
		}
		if taken, err := userFieldTaken(db, "email", *input.Email, user.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrConflict
		}
		fields["email"] = *input.Email
	}
	if input.Alias != nil && *input.Alias != user.Alias {
		if taken, err := userFieldTaken(db, "alias", *input.Alias, user.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrConflict
		}
		fields["alias"] = *input.Alias
	}
	if input.Password != nil {
		if err := ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password"] = string(hash)
	}
	if input.Enabled != nil {
		fields["enabled"] = *input.Enabled
	}
	if input.RoleID != nil {
		fields["role_id"] = *input.RoleID
	}
	if input.SystemAdmin != nil {
		fields["system_admin"] = *input.SystemAdmin
	}

	if len(fields) == 0 {
		return user, nil
	}
	if err := saveVersioned(db, &models.User{}, user.ID, user.Version, fields); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return GetUser(db, id)
}

// DeleteUser removes the row for good.
func DeleteUser(db *gorm.DB, id uint) error {
	user, err := GetUser(db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return db.Delete(&models.User{}, id).Error
}

// ToggleUserEnabled flips the enabled flag.
func ToggleUserEnabled(db *gorm.DB, id uint) (*models.User, error) {
	user, err := GetUser(db, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	fields := map[string]any{"enabled": !user.Enabled}
	if err := saveVersioned(db, &models.User{}, user.ID, user.Version, fields); err != nil {
		return nil, err
	}
	return GetUser(db, id)
}

// ListUsersFiltered runs the filter pipeline over users. roleName restricts
// to users whose role carries that name; empty means no restriction.
func ListUsersFiltered(db *gorm.DB, opts query.Options, roleName string) (query.Page[models.User], error) {
	scopes := []query.Scope{
		func(db *gorm.DB) *gorm.DB { return db.Preload("Role") },
	}
	if roleName != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Joins("JOIN roles ON roles.id = users.role_id").
				Where("roles.name = ?", roleName)
		})
	}
	return query.List[models.User](db, SortableUsers, opts, scopes...)
}

func userFieldTaken(db *gorm.DB, column, value string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).
		Where(column+" = ?", value).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// saveVersioned applies fields to the row only if the version still matches,
// bumping it in the same statement.
func saveVersioned(db *gorm.DB, model any, id, version uint, fields map[string]any) error {
	fields["version"] = version + 1
	res := db.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	return nil
}
