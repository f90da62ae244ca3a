package routes

import (
	"personnel_admin/internal/controllers"
	"personnel_admin/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DocumentRoutes(r *gin.Engine) {
	documents := r.Group("/documentos")
	{
		documents.GET("/", middleware.RequirePermission("document_index"), controllers.IndexDocuments)
		documents.POST("/", middleware.RequirePermission("document_create"), controllers.CreateDocument)
		documents.GET("/eliminar/:id", middleware.RequirePermission("document_destroy"), controllers.DeleteDocument)
	}
}
