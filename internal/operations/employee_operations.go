package operations

import (
	"errors"

	"gorm.io/gorm"

	"personnel_admin/internal/models"
	"personnel_admin/internal/query"
)

var SortableEmployees = query.Sortable{
	"email":      "email",
	"name":       "name",
	"surname":    "surname",
	"dni":        "dni",
	"created_at": "created_at",
}

type PersonInput struct {
	Name                  string `json:"name" binding:"required"`
	Surname               string `json:"surname" binding:"required"`
	DNI                   string `json:"dni"`
	Address               string `json:"address"`
	Email                 string `json:"email" binding:"required,email"`
	Locality              string `json:"locality"`
	Phone                 string `json:"phone"`
	ProfessionID          uint   `json:"profession_id"`
	JobPositionID         uint   `json:"job_position_id"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	HealthPlan            string `json:"health_plan"`
	AffiliateNumber       string `json:"affiliate_number"`
	IsVolunteer           bool   `json:"is_volunteer"`
	Enabled               *bool  `json:"enabled"`
}

// PersonUpdateInput carries only the fields the client wants to change.
type PersonUpdateInput struct {
	Name                  *string `json:"name"`
	Surname               *string `json:"surname"`
	DNI                   *string `json:"dni"`
	Address               *string `json:"address"`
	Email                 *string `json:"email"`
	Locality              *string `json:"locality"`
	Phone                 *string `json:"phone"`
	ProfessionID          *uint   `json:"profession_id"`
	JobPositionID         *uint   `json:"job_position_id"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	HealthPlan            *string `json:"health_plan"`
	AffiliateNumber       *string `json:"affiliate_number"`
	IsVolunteer           *bool   `json:"is_volunteer"`
	Enabled               *bool   `json:"enabled"`
}

// fieldMap translates the non-nil inputs to column assignments. An all-nil
// input yields an empty map and the update becomes a no-op.
func (in PersonUpdateInput) fieldMap() map[string]any {
	fields := map[string]any{}
	set := func(column string, v any, present bool) {
		if present {
			fields[column] = v
		}
	}
	set("name", deref(in.Name), in.Name != nil)
	set("surname", deref(in.Surname), in.Surname != nil)
	set("dni", deref(in.DNI), in.DNI != nil)
	set("address", deref(in.Address), in.Address != nil)
	set("email", deref(in.Email), in.Email != nil)
	set("locality", deref(in.Locality), in.Locality != nil)
	set("phone", deref(in.Phone), in.Phone != nil)
	set("emergency_contact_name", deref(in.EmergencyContactName), in.EmergencyContactName != nil)
	set("emergency_contact_phone", deref(in.EmergencyContactPhone), in.EmergencyContactPhone != nil)
	set("health_plan", deref(in.HealthPlan), in.HealthPlan != nil)
	set("affiliate_number", deref(in.AffiliateNumber), in.AffiliateNumber != nil)
	if in.ProfessionID != nil {
		fields["profession_id"] = *in.ProfessionID
	}
	if in.JobPositionID != nil {
		fields["job_position_id"] = *in.JobPositionID
	}
	if in.IsVolunteer != nil {
		fields["is_volunteer"] = *in.IsVolunteer
	}
	if in.Enabled != nil {
		fields["enabled"] = *in.Enabled
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateEmployee inserts a new employee after validating its email.
func CreateEmployee(db *gorm.DB, input PersonInput, checkDomain bool) (*models.Employee, error) {
	if err := ValidateEmail(input.Email, checkDomain); err != nil {
		return nil, err
	}
	if taken, err := emailTaken(db, &models.Employee{}, input.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrConflict
	}

	employee := models.Employee{
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
		employee.Enabled = *input.Enabled
	}
	if err := db.Create(&employee).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &employee, nil
}

// GetEmployee returns the employee or nil when absent.
func GetEmployee(db *gorm.DB, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := db.Preload("Profession").Preload("JobPosition").First(&employee, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// GetEmployeeByEmail returns the employee with that unique email, or nil.
func GetEmployeeByEmail(db *gorm.DB, email string) (*models.Employee, error) {
	var employee models.Employee
	err := db.Where("email = ?", email).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

// UpdateEmployee merges the supplied fields; unset fields keep their stored
// values. Fails with ErrStaleRecord when the row changed since it was read.
func UpdateEmployee(db *gorm.DB, id uint, input PersonUpdateInput, checkDomain bool) (*models.Employee, error) {
	employee, err := GetEmployee(db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrNotFound
	}
	if input.Email != nil && *input.Email != employee.Email {
		if err := ValidateEmail(*input.Email, checkDomain); err != nil {
			return nil, err
		}
		if taken, err := emailTaken(db, &models.Employee{}, *input.Email, employee.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrConflict
		}
	}

	fields := input.fieldMap()
	if len(fields) == 0 {
		return employee, nil
	}
	if err := saveVersioned(db, &models.Employee{}, employee.ID, employee.Version, fields); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return GetEmployee(db, id)
}

// DeleteEmployee removes the row and its document links in one transaction.
func DeleteEmployee(db *gorm.DB, id uint) error {
	employee, err := GetEmployee(db, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrNotFound
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeDocument{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Employee{}, id).Error
	})
}

// ToggleEmployeeBlock flips the enabled flag.
func ToggleEmployeeBlock(db *gorm.DB, id uint) (*models.Employee, error) {
	return toggleEmployeeFlag(db, id, "enabled", func(e *models.Employee) bool { return e.Enabled })
}

// ToggleEmployeeVolunteer flips the is_volunteer flag.
func ToggleEmployeeVolunteer(db *gorm.DB, id uint) (*models.Employee, error) {
	return toggleEmployeeFlag(db, id, "is_volunteer", func(e *models.Employee) bool { return e.IsVolunteer })
}

func toggleEmployeeFlag(db *gorm.DB, id uint, column string, current func(*models.Employee) bool) (*models.Employee, error) {
	employee, err := GetEmployee(db, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrNotFound
	}
	fields := map[string]any{column: !current(employee)}
	if err := saveVersioned(db, &models.Employee{}, employee.ID, employee.Version, fields); err != nil {
		return nil, err
	}
	return GetEmployee(db, id)
}

// ListEmployeesFiltered runs the filter pipeline. professionSearch matches
// the profession name through a join; empty means no restriction.
func ListEmployeesFiltered(db *gorm.DB, opts query.Options, professionSearch string) (query.Page[models.Employee], error) {
	scopes := []query.Scope{
		func(db *gorm.DB) *gorm.DB { return db.Preload("Profession").Preload("JobPosition") },
	}
	if professionSearch != "" {
		scopes = append(scopes,
			func(db *gorm.DB) *gorm.DB {
				return db.Joins("JOIN professions ON professions.id = employees.profession_id")
			},
			query.SearchField("professions.name", professionSearch),
		)
	}
	return query.List[models.Employee](db, SortableEmployees, opts, scopes...)
}

func emailTaken(db *gorm.DB, model any, email string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(model).
		Where("email = ?", email).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}
