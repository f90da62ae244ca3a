package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/config"
	"personnel_admin/internal/operations"
)

// IndexRiders lists courier records with the same parameters as the
// employee listing.
func IndexRiders(c *gin.Context) {
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

	page, err := operations.ListRidersFiltered(config.GetDB(), opts, c.Query("profession"))
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func ShowRider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rider, err := operations.GetRider(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	if rider == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rider not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

func CreateRider(c *gin.Context) {
	var input operations.PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rider, err := operations.CreateRider(config.GetDB(), input, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rider": rider})
}

func UpdateRider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input operations.PersonUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rider, err := operations.UpdateRider(config.GetDB(), id, input, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

func DeleteRider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := operations.DeleteRider(config.GetDB(), id); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rider deleted"})
}

func ToggleRiderBlock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rider, err := operations.ToggleRiderBlock(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

func ToggleRiderVolunteer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rider, err := operations.ToggleRiderVolunteer(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rider": rider})
}

func ListRiderDocuments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	documents, err := operations.ListRiderDocuments(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

func AttachRiderDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input linkDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := operations.LinkRiderDocument(config.GetDB(), id, input.DocumentID); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Document attached"})
}

func DetachRiderDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docID")
	if !ok {
		return
	}
	if err := operations.UnlinkRiderDocument(config.GetDB(), id, docID); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document detached"})
}
