package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"preparedhub-api/config"
	"preparedhub-api/controllers"
	"preparedhub-api/middleware"
	"preparedhub-api/repositories"
	"preparedhub-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, alertPublisher *services.AlertPublisher) {
	// Repositories and services
	membershipRepo := repositories.NewMembershipRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	alertRepo := repositories.NewAlertRepository(db)

	membershipService := services.NewMembershipService(membershipRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, membershipService)
	alertService := services.NewAlertService(alertRepo, membershipRepo, membershipService, alertPublisher)

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	resourceController := controllers.NewResourceController(db)
	communityController := controllers.NewCommunityController(db, membershipService)
	messageController := controllers.NewMessageController(messageService)
	alertController := controllers.NewAlertController(db, alertService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(120, 20))

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.POST("/verify-code", authController.VerifyCode)
		auth.POST("/resend-verification", authController.ResendVerification)
	}

	// Resources are publicly readable
	v1.GET("/resources", resourceController.GetResources)
	v1.GET("/resources/:id", resourceController.GetResource)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		protected.POST("/quiz/submit", resourceController.SubmitQuiz)

		communities := protected.Group("/communities")
		{
			communities.GET("", communityController.GetCommunities)
			communities.POST("", communityController.CreateCommunity)
			communities.GET("/:id", communityController.GetCommunity)
			communities.DELETE("/:id", communityController.DeleteCommunity)
			communities.POST("/:id/join", communityController.JoinCommunity)
			communities.POST("/:id/leave", communityController.LeaveCommunity)
			communities.GET("/:id/messages", messageController.GetMessages)
			communities.POST("/:id/messages", messageController.SendMessage)
		}

		protected.POST("/messages/:id/pin", messageController.TogglePin)

		alerts := protected.Group("/alerts")
		{
			alerts.GET("", alertController.GetAlerts)
			alerts.POST("", alertController.CreateAlert)
			alerts.POST("/:id/dismiss", alertController.DismissAlert)
		}

		// Admin-only content management
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminRequired(db))
		{
			admin.POST("/resources", resourceController.CreateResource)
			admin.POST("/resources/:id/quizzes", resourceController.CreateQuiz)
		}
	}
}
