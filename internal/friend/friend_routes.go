package friend

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	mw "github.com/sidelines-app/sidelines/internal/middleware"
)

// FriendRoutes sets up friend-request and friendship routes.
func FriendRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewFriendRepository(db)
	controller := NewFriendController(NewFriendService(repo))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/friend-requests", controller.SendFriendRequest)
		authRoutes.GET("/friend-requests/:selector", controller.GetFriendRequests)
		authRoutes.PUT("/friend-requests/:request_id/:action", controller.RespondToFriendRequest)
		authRoutes.DELETE("/friend-requests/:request_id", controller.WithdrawFriendRequest)

		authRoutes.GET("/friends", controller.GetFriends)
		authRoutes.DELETE("/friends/:profile_id", controller.Unfriend)
	}
}
