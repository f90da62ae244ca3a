package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Must be attached before any route is registered
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	UserRoutes(r)
	EmployeeRoutes(r)
	RiderRoutes(r)
	RoleRoutes(r)
	DocumentRoutes(r)

	return r
}
