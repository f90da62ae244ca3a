package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/config"
	"personnel_admin/internal/operations"
)

// IndexDocuments lists documents, optionally filtered by a title substring.
func IndexDocuments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	result, err := operations.ListDocuments(config.GetDB(), c.Query("title"), page)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func CreateDocument(c *gin.Context) {
	var input operations.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	document, err := operations.CreateDocument(config.GetDB(), input)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": document})
}

// DeleteDocument removes the document together with any person links.
func DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := operations.DeleteDocument(config.GetDB(), id); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
