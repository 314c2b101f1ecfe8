package main

import (
	"context"
	"log"
	"os"

	"photopro-be/internal/repository/unitofwork"
	"photopro-be/internal/service"
	"photopro-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding subscription plan catalog...")

	uowFactory := unitofwork.NewRepositoryFactory(db)
	planService := service.NewPlanService(uowFactory)

	seeded, err := planService.EnsureDefaultPlans(context.Background())
	if err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	if seeded == 0 {
		color.Yellow("Plans already present, nothing to do.")
		return
	}

	for _, plan := range service.DefaultPlans() {
		color.Green("  ✔ %s", plan.Name)
	}
	color.Green("Seeded %d plans.", seeded)
}
