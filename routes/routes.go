package routes

import (
	"os"
	"strings"

	"github.com/PaulBerthelot21/nutrylog/controllers"
	"github.com/PaulBerthelot21/nutrylog/metrics"
	"github.com/PaulBerthelot21/nutrylog/middlewares"
	"github.com/PaulBerthelot21/nutrylog/services"
	"github.com/PaulBerthelot21/nutrylog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRouter builds the gin engine with every service wired once. uploader
// and mailer may be nil when AWS is not configured.
func SetupRouter(db *gorm.DB, uploader *utils.S3Uploader, mailer *utils.Mailer) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:4000", "http://localhost:3001"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	r.Use(collector.Middleware())

	foodSvc := services.NewFoodService(db)
	mealSvc := services.NewMealService(db, foodSvc)
	userSvc := services.NewUserService(db)
	authSvc := services.NewAuthService(db, userSvc, mailer)

	authCtl := controllers.NewAuthController(authSvc)
	userCtl := controllers.NewUserController(userSvc, uploader)
	foodCtl := controllers.NewFoodController(foodSvc)
	mealCtl := controllers.NewMealController(mealSvc)

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/metrics", metrics.Handler(registry))

	api := r.Group("/api")

	// 10 req/min per IP on the credential endpoints.
	authLimiter := middlewares.NewRateLimiter(rate.Limit(10.0/60.0), 10)

	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
		auth.POST("/refresh", middlewares.AuthMiddleware(), authCtl.Refresh)
	}

	users := api.Group("/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/me", userCtl.Me)
		users.PATCH("/me", userCtl.UpdateMe)
		users.DELETE("/me", userCtl.DeleteMe)
		users.POST("/me/avatar", userCtl.UploadAvatar)
	}

	foods := api.Group("/foods")
	{
		foods.POST("", foodCtl.Create)
		foods.POST("/find-or-create", foodCtl.FindOrCreate)
		foods.GET("", foodCtl.FindAll)
		foods.GET("/barcode/:barcode", foodCtl.FindByBarcode)
		foods.GET("/:id", foodCtl.FindOne)
		foods.PATCH("/:id", foodCtl.Update)
		foods.DELETE("/:id", foodCtl.Remove)
	}

	meals := api.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", mealCtl.Create)
		meals.GET("", mealCtl.FindAll)
		meals.GET("/date/:date", mealCtl.FindByDate)
		meals.GET("/range", mealCtl.FindByDateRange)
		meals.GET("/summary/:date", mealCtl.GetDailySummary)
		meals.GET("/:id", mealCtl.FindOne)
		meals.PATCH("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
		meals.POST("/:id/items", mealCtl.AddItem)
		meals.PATCH("/:id/items/:itemId", mealCtl.UpdateItem)
		meals.DELETE("/:id/items/:itemId", mealCtl.RemoveItem)
	}

	return r
}
