package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/config"
	"personnel_admin/internal/operations"
)

// IndexEmployees lists employees through the filter pipeline.
// Query params: mail, name, surname, profession (substrings), status,
// order (sort attribute), ascending, page.
func IndexEmployees(c *gin.Context) {
	opts := parseListQuery(c, "order", "email")
	if mail := c.Query("mail"); mail != "" {
		opts.Search["email"] = mail
	}
	if name := c.Query("name"); name != "" {
		opts.Search["name"] = name
	}
	if surname := c.Query("surname"); surname != "" {
		opts.Search["surname"] = surname
	}

	page, err := operations.ListEmployeesFiltered(config.GetDB(), opts, c.Query("profession"))
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func ShowEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := operations.GetEmployee(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func CreateEmployee(c *gin.Context) {
	var input operations.PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee, err := operations.CreateEmployee(config.GetDB(), input, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

func UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input operations.PersonUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee, err := operations.UpdateEmployee(config.GetDB(), id, input, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := operations.DeleteEmployee(config.GetDB(), id); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func ToggleEmployeeBlock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := operations.ToggleEmployeeBlock(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

func ToggleEmployeeVolunteer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	employee, err := operations.ToggleEmployeeVolunteer(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// --- document links ---

type linkDocumentInput struct {
	DocumentID uint `json:"document_id" binding:"required"`
}

func ListEmployeeDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	documents, err := operations.ListEmployeeDocuments(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

func AttachEmployeeDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input linkDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := operations.LinkEmployeeDocument(config.GetDB(), id, input.DocumentID); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Document attached"})
}

func DetachEmployeeDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docID")
	if !ok {
		return
	}
	if err := operations.UnlinkEmployeeDocument(config.GetDB(), id, docID); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document detached"})
}
