package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/config"
	"personnel_admin/internal/operations"
)

func IndexRoles(c *gin.Context) {
	roles, err := operations.ListRoles(config.GetDB())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}

func ShowRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	role, err := operations.GetRole(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	if role == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}
