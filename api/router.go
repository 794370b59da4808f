package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the engine with the full route table. main and the
// handler tests share it so they exercise the same routing.
func SetupRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	apiGroup := r.Group("/api")
	apiGroup.POST("/register", handler.Register)
	apiGroup.POST("/login", handler.Login)

	protected := apiGroup.Group("/transaction", handler.AuthMiddleware())
	protected.POST("/add", handler.AddTransaction)
	protected.GET("/", handler.GetTransactions)
	protected.GET("/:id", handler.GetTransaction)
	protected.PUT("/update/:id", handler.UpdateTransaction)
	protected.DELETE("/:id", handler.DeleteTransaction)
	protected.GET("/summary/:id", handler.TransactionSummary)
	protected.GET("/monthly-report/:id", handler.MonthlyReport)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
