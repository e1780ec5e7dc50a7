package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"iso_dispatch/internal/config"
	"iso_dispatch/internal/controllers"
	"iso_dispatch/internal/logger"
	"iso_dispatch/internal/middleware"
	"iso_dispatch/internal/refdata"
	"iso_dispatch/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and load the session policy
	config.InitDB()
	config.InitPolicy()

	// Sync hospital reference data from the external feed
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := refdata.Sync(ctx, config.DB, config.Current.HospitalFeedURL); err != nil {
		log.Fatalf("hospital reference sync failed: %v", err)
	}

	// Wire the external optimizer client
	controllers.InitSolver(config.Current.OptimizerURL)

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Dispatch server running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
