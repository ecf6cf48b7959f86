package routes

import (
	"contesthub/controllers"
	"contesthub/db"
	"contesthub/middlewares"
	"contesthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleGuard builds the permission check for a resource and action
type RoleGuard func(resource, action string) gin.HandlerFunc

// Dependencies are constructed once at startup and shared by every handler
type Dependencies struct {
	Store  db.Store
	Issuer *utils.TokenIssuer
	Log    *zap.SugaredLogger
	// Role is optional; without it the admin views only need a valid token
	Role RoleGuard
}

// Register mounts every endpoint on router
func Register(router *gin.Engine, deps Dependencies) {
	auth := middlewares.AuthMiddleware(deps.Issuer, deps.Log)
	role := deps.Role
	if role == nil {
		role = func(string, string) gin.HandlerFunc { return middlewares.AllowAll() }
	}

	router.GET("/", controllers.Home)
	router.GET("/health", controllers.Health(deps.Store, deps.Log))

	authController := controllers.NewAuthController(deps.Issuer, deps.Log)
	router.POST("/jwt", authController.IssueToken)

	SetupUserRoutes(router, controllers.NewUserController(deps.Store, deps.Log), auth, role)
	SetupContestRoutes(router, controllers.NewContestController(deps.Store, deps.Log), auth, role)
	SetupSubmissionRoutes(router, controllers.NewSubmissionController(deps.Store, deps.Log))
}
