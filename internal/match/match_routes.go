package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	mw "github.com/sidelines-app/sidelines/internal/middleware"
)

// MatchRoutes sets up match and match-invitation routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMatchRepository(db)
	controller := NewMatchController(NewMatchService(repo), NewMatchInvitationService(repo))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/match-invitations", controller.SendMatchInvitation)
		authRoutes.GET("/match-invitations/:selector", controller.GetMatchInvitations)
		authRoutes.PUT("/match-invitations/:request_id/:action", controller.RespondToMatchInvitation)
		authRoutes.DELETE("/match-invitations/:request_id", controller.WithdrawMatchInvitation)

		authRoutes.GET("/matches", controller.GetMatches)
		authRoutes.GET("/matches/:match_id", controller.GetMatch)
		authRoutes.POST("/matches/:match_id/vote", controller.CastVote)
		authRoutes.GET("/matches/:match_id/votes", controller.GetVotes)
		authRoutes.POST("/matches/:match_id/stats", controller.RecordStats)
		authRoutes.GET("/matches/:match_id/stats", controller.GetStats)
	}
}
