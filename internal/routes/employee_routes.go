package routes

import (
	"personnel_admin/internal/controllers"
	"personnel_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func EmployeeRoutes(r *gin.Engine) {
	employees := r.Group("/empleados")
	{
		employees.GET("/", middleware.RequirePermission("employee_index"), controllers.IndexEmployees)
		employees.GET("/:id", middleware.RequirePermission("employee_show"), controllers.ShowEmployee)
		employees.POST("/", middleware.RequirePermission("employee_create"), controllers.CreateEmployee)
		employees.POST("/update/:id", middleware.RequirePermission("employee_update"), controllers.UpdateEmployee)
		employees.GET("/eliminar/:id", middleware.RequirePermission("employee_destroy"), controllers.DeleteEmployee)
		employees.POST("/bloquear/:id", middleware.RequirePermission("employee_block"), controllers.ToggleEmployeeBlock)
		employees.POST("/voluntario/:id", middleware.RequirePermission("employee_update"), controllers.ToggleEmployeeVolunteer)

		employees.GET("/:id/documentos", middleware.RequirePermission("employee_show"), controllers.ListEmployeeDocuments)
		employees.POST("/:id/documentos", middleware.RequirePermission("employee_update"), controllers.AttachEmployeeDocument)
		employees.GET("/:id/documentos/eliminar/:docID", middleware.RequirePermission("employee_update"), controllers.DetachEmployeeDocument)
	}
}
