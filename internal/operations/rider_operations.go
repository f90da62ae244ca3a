package operations

import (
	"errors"

	"gorm.io/gorm"

	"personnel_admin/internal/models"
	"personnel_admin/internal/query"
)

var SortableRiders = query.Sortable{
	"email":      "email",
	"name":       "name",
	"surname":    "surname",
	"dni":        "dni",
	"created_at": "created_at",
}

func CreateRider(db *gorm.DB, input PersonInput, checkDomain bool) (*models.Rider, error) {
	if err := ValidateEmail(input.Email, checkDomain); err != nil {
		return nil, err
	}
	if taken, err := emailTaken(db, &models.Rider{}, input.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}

	rider := models.Rider{
		Name:                  input.Name,
		Surname:               input.Surname,
		DNI:                   input.DNI,
		Address:               input.Address,
		Email:                 input.Email,
		Locality:              input.Locality,
		Phone:                 input.Phone,
		ProfessionID:          input.ProfessionID,
		JobPositionID:         input.JobPositionID,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		HealthPlan:            input.HealthPlan,
		AffiliateNumber:       input.AffiliateNumber,
		IsVolunteer:           input.IsVolunteer,
		Enabled:               true,
	}
	if input.Enabled != nil {
		rider.Enabled = *input.Enabled
	}
	if err := db.Create(&rider).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &rider, nil
}

func GetRider(db *gorm.DB, id uint) (*models.Rider, error) {
	var rider models.Rider
	err := db.Preload("Profession").Preload("JobPosition").First(&rider, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

func GetRiderByEmail(db *gorm.DB, email string) (*models.Rider, error) {
	var rider models.Rider
	err := db.Where("email = ?", email).First(&rider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

func UpdateRider(db *gorm.DB, id uint, input PersonUpdateInput, checkDomain bool) (*models.Rider, error) {
	rider, err := GetRider(db, id)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, ErrNotFound
	}
	if input.Email != nil && *input.Email != rider.Email {
		if err := ValidateEmail(*input.Email, checkDomain); err != nil {
			return nil, err
		}
		if taken, err := emailTaken(db, &models.Rider{}, *input.Email, rider.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrConflict
		}
	}

	fields := input.fieldMap()
	if len(fields) == 0 {
		return rider, nil
	}
	if err := saveVersioned(db, &models.Rider{}, rider.ID, rider.Version, fields); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return GetRider(db, id)
}

func DeleteRider(db *gorm.DB, id uint) error {
	rider, err := GetRider(db, id)
	if err != nil {
		return err
	}
	if rider == nil {
		return ErrNotFound
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rider_id = ?", id).Delete(&models.RiderDocument{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Rider{}, id).Error
	})
}

func ToggleRiderBlock(db *gorm.DB, id uint) (*models.Rider, error) {
	return toggleRiderFlag(db, id, "enabled", func(r *models.Rider) bool { return r.Enabled })
}

func ToggleRiderVolunteer(db *gorm.DB, id uint) (*models.Rider, error) {
	return toggleRiderFlag(db, id, "is_volunteer", func(r *models.Rider) bool { return r.IsVolunteer })
}

func toggleRiderFlag(db *gorm.DB, id uint, column string, current func(*models.Rider) bool) (*models.Rider, error) {
	rider, err := GetRider(db, id)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, ErrNotFound
	}
	fields := map[string]any{column: !current(rider)}
	if err := saveVersioned(db, &models.Rider{}, rider.ID, rider.Version, fields); err != nil {
		return nil, err
	}
	return GetRider(db, id)
}

func ListRidersFiltered(db *gorm.DB, opts query.Options, professionSearch string) (query.Page[models.Rider], error) {
	scopes := []query.Scope{
		func(db *gorm.DB) *gorm.DB { return db.Preload("Profession").Preload("JobPosition") },
	}
	if professionSearch != "" {
		scopes = append(scopes,
			func(db *gorm.DB) *gorm.DB {
				return db.Joins("JOIN professions ON professions.id = riders.profession_id")
			},
			query.SearchField("professions.name", professionSearch),
		)
	}
	return query.List[models.Rider](db, SortableRiders, opts, scopes...)
}
