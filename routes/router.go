package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/sidelines-app/sidelines/config"
	"github.com/sidelines-app/sidelines/internal/auth"
	"github.com/sidelines-app/sidelines/internal/friend"
	"github.com/sidelines-app/sidelines/internal/match"
	"github.com/sidelines-app/sidelines/internal/profile"
	"github.com/sidelines-app/sidelines/internal/team"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	profile.ProfileRoutes(api, db, appConfig)
	friend.FriendRoutes(api, db, appConfig)
	team.TeamRoutes(api, db, appConfig)
	match.MatchRoutes(api, db, appConfig)

	return r
}
