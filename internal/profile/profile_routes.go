package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	mw "github.com/sidelines-app/sidelines/internal/middleware"
)

// ProfileRoutes sets up profile routes.
func ProfileRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	controller := NewProfileController(NewProfileRepository(db))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.GET("/profiles/me", controller.GetMyProfile)
		authRoutes.GET("/profiles/search", controller.SearchProfiles)
		authRoutes.GET("/profiles/:profile_id", controller.GetProfile)
		authRoutes.PUT("/profiles/setup", controller.SetupProfile)
		authRoutes.PUT("/profiles/records", controller.UpdateRecords)
	}
}
