package router

import (
	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(middleware.CORS())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	analyticsHandler := api.NewAnalyticsHandler(db)
	categoryHandler := api.NewCategoryHandler(db)
	transactionHandler := api.NewTransactionHandler(db)
	goalHandler := api.NewGoalHandler(db)
	exportHandler := api.NewExportHandler(db)

	apiGroup := r.Group("/api")
	// 写操作限流，读请求不受影响
	apiGroup.Use(middleware.RateLimit(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))
	{
		apiGroup.GET("/health", api.Health)

		analytics := apiGroup.Group("/analytics")
		{
			analytics.GET("/summary", analyticsHandler.Summary)
			analytics.GET("/by-category", analyticsHandler.ByCategory)
			analytics.GET("/trends", analyticsHandler.Trends)
			analytics.GET("/budgets", analyticsHandler.Budgets)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
		}

		transactions := apiGroup.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.Get)
			transactions.POST("", transactionHandler.Create)
			transactions.PUT("/:id", transactionHandler.Update)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		goals := apiGroup.Group("/goals")
		{
			goals.GET("", goalHandler.List)
			goals.GET("/:id", goalHandler.Get)
			goals.POST("", goalHandler.Create)
			goals.PUT("/:id", goalHandler.Update)
			goals.POST("/:id/progress", goalHandler.UpdateProgress)
			goals.DELETE("/:id", goalHandler.Delete)
		}

		export := apiGroup.Group("/export")
		{
			export.GET("/transactions", exportHandler.Transactions)
			export.GET("/goals", exportHandler.Goals)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		api.NotFound(c, "Route not found")
	})

	return r
}
