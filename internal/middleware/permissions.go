package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/models"
)

// HasPermission checks the principal's permission set. System admins bypass
// the check unconditionally; a user without a role has no permissions.
func HasPermission(user *models.User, permission string) bool {
	if user == nil {
		return false
	}
	if user.SystemAdmin {
		return true
	}
	if user.Role == nil {
		return false
	}
	for _, p := range user.Role.Permissions {
		if p.Name == permission {
			return true
		}
	}
	return false
}

// RequirePermission guards a route behind authentication plus one named
// permission. The chain only advances once both checks have passed, so the
// handler body never runs on a rejected request.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := authenticate(c)
		if user == nil {
			return
		}
		if !HasPermission(user, permission) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
