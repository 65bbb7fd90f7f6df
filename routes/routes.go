package routes

import (
	"os"
	"strings"

	"loyaltypos-backend/config"
	"loyaltypos-backend/controllers"
	"loyaltypos-backend/services"
	"loyaltypos-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cache *redis.Client) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	ledger := services.NewLedgerService(db)
	reports := services.NewReportService(db)

	authController := controllers.NewAuthController(db)
	memberController := controllers.NewMemberController(db)
	ruleController := controllers.NewPointRuleController(db)
	productController := controllers.NewProductController(db)
	rewardController := controllers.NewRewardController(db)
	saleController := controllers.NewSaleController(ledger)
	debtController := controllers.NewDebtController(ledger, reports)
	reportController := controllers.NewReportController(reports, cache)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Member routes
		members := api.Group("/members")
		{
			members.POST("", memberController.CreateMember)
			members.GET("", memberController.GetMembers)
			members.GET("/lookup", memberController.LookupMember)
			members.GET("/:id", memberController.GetMember)
			members.PUT("/:id", memberController.UpdateMember)
			members.GET("/:id/history", memberController.GetMemberHistory)
		}

		// Point rule routes
		rules := api.Group("/point-rules")
		{
			rules.POST("", ruleController.CreatePointRule)
			rules.GET("", ruleController.GetPointRules)
			rules.PUT("/:id", ruleController.UpdatePointRule)
			rules.DELETE("/:id", ruleController.DeletePointRule)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.POST("", productController.CreateProduct)
			products.GET("", productController.GetProducts)
			products.PUT("/:id", productController.UpdateProduct)
			products.DELETE("/:id", productController.DeleteProduct)
		}

		// Reward routes
		rewards := api.Group("/rewards")
		{
			rewards.POST("", rewardController.CreateReward)
			rewards.GET("", rewardController.GetRewards)
			rewards.PUT("/:id", rewardController.UpdateReward)
			rewards.DELETE("/:id", rewardController.DeleteReward)
		}

		// Ledger routes
		api.POST("/sales", saleController.RecordSale)
		points := api.Group("/points")
		{
			points.POST("/accumulate", saleController.AccumulatePoints)
			points.POST("/redeem", saleController.RedeemReward)
		}

		// Debt routes
		debts := api.Group("/debts")
		{
			debts.GET("/unpaid", debtController.GetUnpaidDebts)
			debts.POST("/settle", debtController.SettleDebts)
		}

		// Report routes
		reportsGroup := api.Group("/reports")
		{
			reportsGroup.GET("/daily-summary", reportController.GetDailySummary)
			reportsGroup.GET("/loyal-customers", reportController.GetLoyalCustomers)
		}
	}

	return r
}
