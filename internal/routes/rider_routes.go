package routes

import (
	"personnel_admin/internal/controllers"
	"personnel_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RiderRoutes(r *gin.Engine) {
	riders := r.Group("/riders")
	{
		riders.GET("/", middleware.RequirePermission("rider_index"), controllers.IndexRiders)
		riders.GET("/:id", middleware.RequirePermission("rider_show"), controllers.ShowRider)
		riders.POST("/", middleware.RequirePermission("rider_create"), controllers.CreateRider)
		riders.POST("/update/:id", middleware.RequirePermission("rider_update"), controllers.UpdateRider)
		riders.GET("/eliminar/:id", middleware.RequirePermission("rider_destroy"), controllers.DeleteRider)
		riders.POST("/bloquear/:id", middleware.RequirePermission("rider_block"), controllers.ToggleRiderBlock)
		riders.POST("/voluntario/:id", middleware.RequirePermission("rider_update"), controllers.ToggleRiderVolunteer)

		riders.GET("/:id/documentos", middleware.RequirePermission("rider_show"), controllers.ListRiderDocuments)
		riders.POST("/:id/documentos", middleware.RequirePermission("rider_update"), controllers.AttachRiderDocument)
		riders.GET("/:id/documentos/eliminar/:docID", middleware.RequirePermission("rider_update"), controllers.DetachRiderDocument)
	}
}
