package main

import (
	"fmt"
	"log"

	"loyaltypos-backend/config"
	"loyaltypos-backend/models"
	"loyaltypos-backend/routes"
	"loyaltypos-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.PointRule{},
		&models.Product{},
		&models.Reward{},
		&models.Transaction{},
		&models.UnpaidDebt{},
		&models.DebtItem{},
		&models.GreetingLog{},
	)

	cache := config.NewCacheClient(cfg.Redis)

	greeter := services.NewGreetingService(db)
	greeter.StartScheduler()

	r := routes.SetupRouter(db, cache)
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
