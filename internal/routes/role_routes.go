package routes

import (
	"personnel_admin/internal/controllers"
	"personnel_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RoleRoutes(r *gin.Engine) {
	roles := r.Group("/roles")
	roles.Use(middleware.RequirePermission("role_index"))
	{
		roles.GET("/", controllers.IndexRoles)
		roles.GET("/:id", controllers.ShowRole)
	}
}
