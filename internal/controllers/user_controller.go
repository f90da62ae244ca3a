package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personnel_admin/internal/config"
	"personnel_admin/internal/middleware"
	"personnel_admin/internal/operations"
)

type createUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Alias    string `json:"alias" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Enabled  *bool  `json:"enabled"`
}

type updateUserInput struct {
	Email       *string `json:"email"`
	Alias       *string `json:"alias"`
	Password    *string `json:"password"`
	Enabled     *bool   `json:"enabled"`
	Role        *string `json:"role"`
	SystemAdmin *bool   `json:"system_admin"`
}

// IndexUsers lists users through the filter pipeline.
// Query params: mail (email substring), value (alias substring), role (role
// name), status (enabled/disabled/all), order_email (sort attribute),
// ascending, page.
func IndexUsers(c *gin.Context) {
	opts := parseListQuery(c, "order_email", "email")
	if mail := c.Query("mail"); mail != "" {
		opts.Search["email"] = mail
	}
	if value := c.Query("value"); value != "" {
		opts.Search["alias"] = value
	}

	page, err := operations.ListUsersFiltered(config.GetDB(), opts, c.Query("role"))
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UserProfile shows one user by their unique alias.
func UserProfile(c *gin.Context) {
	user, err := operations.GetUserByAlias(config.GetDB(), c.Param("alias"))
	if err != nil {
		abortOperationError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// MyProfile shows the authenticated principal's own record.
func MyProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": middleware.CurrentUser(c)})
}

// CreateUser registers a new staff account.
func CreateUser(c *gin.Context) {
	var input createUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roleID, ok := resolveRole(c, input.Role)
	if !ok {
		return
	}

	user, err := operations.CreateUser(config.GetDB(), operations.CreateUserInput{
		Email:    input.Email,
		Alias:    input.Alias,
		Password: input.Password,
		RoleID:   roleID,
		Enabled:  input.Enabled,
	}, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// UpdateUser applies a partial update under the self-service rules:
//   - editing your own record needs no extra permission for identity fields
//     (email, alias, password), but privilege fields still need user_update;
//   - editing someone else needs user_update and may never touch their
//     identity fields.
//
// All checks run before any field is written.
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input updateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roleID, ok := resolveRole(c, derefStr(input.Role))
	if !ok {
		return
	}
	update := operations.UpdateUserInput{
		Email:       input.Email,
		Alias:       input.Alias,
		Password:    input.Password,
		Enabled:     input.Enabled,
		RoleID:      roleID,
		SystemAdmin: input.SystemAdmin,
	}

	requester := middleware.CurrentUser(c)
	isSelf := requester.ID == id
	canUpdateOthers := middleware.HasPermission(requester, "user_update")

	if !isSelf && !canUpdateOthers {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	if !isSelf && update.IdentityChange() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot change another user's email, alias or password"})
		return
	}
	if update.PrivilegeChange() && !canUpdateOthers {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	user, err := operations.UpdateUser(config.GetDB(), id, update, config.EmailMXCheck())
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes the account for good.
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := operations.DeleteUser(config.GetDB(), id); err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ToggleUserEnabled flips the enabled flag, the reversible alternative to
// deletion.
func ToggleUserEnabled(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := operations.ToggleUserEnabled(config.GetDB(), id)
	if err != nil {
		abortOperationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// resolveRole turns a role name into its id. Empty name means "leave the
// role alone" and returns nil.
func resolveRole(c *gin.Context, name string) (*uint, bool) {
	if name == "" {
		return nil, true
	}
	role, err := operations.GetRoleByName(config.GetDB(), name)
	if err != nil {
		abortOperationError(c, err)
		return nil, false
	}
	if role == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown role", "field": "role"})
		return nil, false
	}
	return &role.ID, true
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
