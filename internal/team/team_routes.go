package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	mw "github.com/sidelines-app/sidelines/internal/middleware"
)

// TeamRoutes sets up team, roster and team-invitation routes.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewTeamRepository(db)
	policy := Policy{AllowLastAdminDemote: appConfig.Team.AllowLastAdminDemote}
	controller := NewTeamController(NewTeamService(repo, policy), NewTeamInvitationService(repo))

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authRoutes.POST("/teams", controller.CreateTeam)
		authRoutes.GET("/teams", controller.GetTeams)
		authRoutes.GET("/teams/:team_id", controller.GetTeam)
		authRoutes.PUT("/teams/:team_id", controller.UpdateTeam)
		authRoutes.DELETE("/teams/:team_id", controller.DeleteTeam)

		authRoutes.GET("/teams/:team_id/members", controller.GetTeamMembers)
		authRoutes.PUT("/teams/:team_id/promote/:member_id", controller.PromoteMember)
		authRoutes.PUT("/teams/:team_id/demote/:member_id", controller.DemoteMember)
		authRoutes.DELETE("/teams/:team_id/remove/:member_id", controller.RemoveMember)
		authRoutes.DELETE("/teams/:team_id/leave", controller.LeaveTeam)

		authRoutes.POST("/team-invitations", controller.SendTeamInvitation)
		authRoutes.GET("/team-invitations/:selector", controller.GetTeamInvitations)
		authRoutes.PUT("/team-invitations/:request_id/:action", controller.RespondToTeamInvitation)
		authRoutes.DELETE("/team-invitations/:request_id", controller.WithdrawTeamInvitation)
	}
}
