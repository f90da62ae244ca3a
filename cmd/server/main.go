package main

import (
	"log"
	"net/http"

	"personnel_admin/internal/config"
	"personnel_admin/internal/logger"
	"personnel_admin/internal/middleware"
	"personnel_admin/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database, migrate and seed
	config.InitDB()

	// Setup Gin router (recovery + request logging attached inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
