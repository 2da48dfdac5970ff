package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	"github.com/sidelines-app/sidelines/internal/middleware"
)

// RegisterAuthRoutes sets up authentication endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/signup", authController.SignUp)
		authPublic.POST("/signin", authController.SignIn)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authProtected.GET("/verify", authController.VerifyToken)
	}
}
