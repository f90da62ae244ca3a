package routes

import (
	"personnel_admin/internal/controllers"
	"personnel_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

// UserRoutes keeps the reference system's Spanish paths. The update route is
// only behind authentication: the self-service rules inside the handler
// decide whether user_update is needed.
func UserRoutes(r *gin.Engine) {
	users := r.Group("/usuarios")
	{
		users.GET("/", middleware.RequirePermission("user_index"), controllers.IndexUsers)
		users.GET("/perfil/:alias", middleware.RequirePermission("user_show"), controllers.UserProfile)
		users.GET("/miperfil", middleware.RequireAuth(), controllers.MyProfile)
		users.POST("/", middleware.RequirePermission("user_create"), controllers.CreateUser)
		users.POST("/update/:id", middleware.RequireAuth(), controllers.UpdateUser)
		users.GET("/eliminar/:id", middleware.RequirePermission("user_destroy"), controllers.DeleteUser)
		users.POST("/bloquear/:id", middleware.RequirePermission("user_block"), controllers.ToggleUserEnabled)
	}
}
