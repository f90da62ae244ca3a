package operations

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"personnel_admin/internal/models"
	"personnel_admin/internal/query"
)

var SortableDocuments = query.Sortable{
	"title":       "title",
	"file_name":   "file_name",
	"uploaded_at": "uploaded_at",
	"created_at":  "created_at",
}

type DocumentInput struct {
	Title    string `json:"title" binding:"required"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
}

func CreateDocument(db *gorm.DB, input DocumentInput) (*models.Document, error) {
	document := models.Document{
		Title:      input.Title,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		UploadedAt: time.Now(),
	}
	if err := db.Create(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func GetDocument(db *gorm.DB, id uint) (*models.Document, error) {
	var document models.Document
	if err := db.First(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

// ListDocuments pages documents filtered by a title substring. Documents
// have no enabled flag, so the status stages are left wide open.
func ListDocuments(db *gorm.DB, titleSearch string, page int) (query.Page[models.Document], error) {
	opts := query.DefaultOptions("title")
	opts.Page = page
	if titleSearch != "" {
		opts.Search = map[string]string{"title": titleSearch}
	}
	return query.List[models.Document](db, SortableDocuments, opts)
}

// DeleteDocument removes the document and every link pointing at it.
func DeleteDocument(db *gorm.DB, id uint) error {
	document, err := GetDocument(db, id)
	if err != nil {
		return err
	}
	if document == nil {
		return ErrNotFound
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&models.EmployeeDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", id).Delete(&models.RiderDocument{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Document{}, id).Error
	})
}

// LinkEmployeeDocument attaches a document to an employee. Both parents must
// exist; a duplicate link is a conflict.
func LinkEmployeeDocument(db *gorm.DB, employeeID, documentID uint) error {
	employee, err := GetEmployee(db, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrNotFound
	}
	document, err := GetDocument(db, documentID)
	if err != nil {
		return err
	}
	if document == nil {
		return ErrNotFound
	}

	var count int64
	if err := db.Model(&models.EmployeeDocument{}).
		Where("employee_id = ? AND document_id = ?", employeeID, documentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	link := models.EmployeeDocument{EmployeeID: employeeID, DocumentID: documentID}
	if err := db.Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// UnlinkEmployeeDocument removes the link only; the document row survives.
func UnlinkEmployeeDocument(db *gorm.DB, employeeID, documentID uint) error {
	res := db.Where("employee_id = ? AND document_id = ?", employeeID, documentID).
		Delete(&models.EmployeeDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEmployeeDocuments returns the documents linked to an employee.
func ListEmployeeDocuments(db *gorm.DB, employeeID uint) ([]models.Document, error) {
	employee, err := GetEmployee(db, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrNotFound
	}
	var documents []models.Document
	err = db.Model(&models.Document{}).
		Joins("JOIN employee_documents ON employee_documents.document_id = documents.id").
		Where("employee_documents.employee_id = ?", employeeID).
		Order("documents.title ASC").
		Find(&documents).Error
	return documents, err
}

func LinkRiderDocument(db *gorm.DB, riderID, documentID uint) error {
	rider, err := GetRider(db, riderID)
	if err != nil {
		return err
	}
	if rider == nil {
		return ErrNotFound
	}
	document, err := GetDocument(db, documentID)
	if err != nil {
		return err
	}
	if document == nil {
		return ErrNotFound
	}

	var count int64
	if err := db.Model(&models.RiderDocument{}).
		Where("rider_id = ? AND document_id = ?", riderID, documentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	link := models.RiderDocument{RiderID: riderID, DocumentID: documentID}
	if err := db.Create(&link).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func UnlinkRiderDocument(db *gorm.DB, riderID, documentID uint) error {
	res := db.Where("rider_id = ? AND document_id = ?", riderID, documentID).
		Delete(&models.RiderDocument{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func ListRiderDocuments(db *gorm.DB, riderID uint) ([]models.Document, error) {
	rider, err := GetRider(db, riderID)
	if err != nil {
		return nil, err
	}
	if rider == nil {
		return nil, ErrNotFound
	}
	var documents []models.Document
	err = db.Model(&models.Document{}).
		Joins("JOIN rider_documents ON rider_documents.document_id = documents.id").
		Where("rider_documents.rider_id = ?", riderID).
		Order("documents.title ASC").
		Find(&documents).Error
	return documents, err
}
