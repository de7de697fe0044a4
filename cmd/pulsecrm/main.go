package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pulsecrm-dev/pulsecrm/db"
	"github.com/pulsecrm-dev/pulsecrm/internal/auth"
	"github.com/pulsecrm-dev/pulsecrm/internal/deadline"
	"github.com/pulsecrm-dev/pulsecrm/internal/handlers"
	"github.com/pulsecrm-dev/pulsecrm/internal/router"
	"github.com/pulsecrm-dev/pulsecrm/internal/scheduler"
	"github.com/pulsecrm-dev/pulsecrm/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err := db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	crm := store.New(db.DB)

	engine := deadline.NewEngine(crm, crm, deadline.ConfigFromEnv())
	engine.OnEmit(handlers.BroadcastRefresh)

	handlers.Configure(engine, deadline.NewViewer(crm), crm)

	scheduler.Initialize(engine)
	defer scheduler.Shutdown()

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
