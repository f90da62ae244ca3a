package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	gorm.Model
	Title      string    `json:"title" binding:"required"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// EmployeeDocument links an employee to a document. Composite primary key,
// no identity of its own: rows exist only while both parents and the link do.
type EmployeeDocument struct {
	EmployeeID uint      `gorm:"primaryKey" json:"employee_id"`
	DocumentID uint      `gorm:"primaryKey" json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// RiderDocument is the rider-side counterpart of EmployeeDocument.
type RiderDocument struct {
	RiderID    uint      `gorm:"primaryKey" json:"rider_id"`
	DocumentID uint      `gorm:"primaryKey" json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}
