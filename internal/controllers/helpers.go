package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"personnel_admin/internal/operations"
	"personnel_admin/internal/query"
)

// abortOperationError maps every operations error to exactly one response.
// Anything unrecognized is logged and becomes a 500 without leaking detail.
func abortOperationError(c *gin.Context, err error) {
	var validation *operations.ValidationError
	switch {
	case errors.Is(err, operations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, operations.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Value already in use"})
	case errors.Is(err, operations.ErrStaleRecord):
		c.JSON(http.StatusConflict, gin.H{"error": "Record was modified by someone else, reload and retry"})
	case errors.Is(err, query.ErrInvalidSortAttribute):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort attribute"})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validation.Message, "field": validation.Field})
	default:
		logrus.WithError(err).Error("unexpected operation failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return 0, false
	}
	return uint(id), true
}

// parseListQuery builds pipeline options from the common list parameters:
// page, status (enabled/disabled/all), ascending and the sort attribute
// carried in sortParam. Search parameters are entity-specific and added by
// each handler.
func parseListQuery(c *gin.Context, sortParam, defaultSort string) query.Options {
	opts := query.DefaultOptions(defaultSort)

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		opts.Page = page
	}
	switch c.DefaultQuery("status", "all") {
	case "enabled":
		opts.ShowDisabled = false
	case "disabled":
		opts.ShowEnabled = false
	}
	if attr := c.Query(sortParam); attr != "" {
		opts.SortAttribute = attr
	}
	opts.Ascending = c.DefaultQuery("ascending", "true") != "false"
	opts.Search = map[string]string{}
	return opts
}
