package routes

import (
	"contesthub/controllers"
	"contesthub/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, uc *controllers.UserController, auth gin.HandlerFunc, role RoleGuard) {
	router.POST("/user", uc.CreateUser)
	router.PUT("/user/:email", uc.UpdateUser)
	router.GET("/user/:email", auth, uc.GetUser)
	router.GET("/users", auth, role(middlewares.ResourceUser, middlewares.ActionRead), uc.GetUsers)

	router.GET("/leaderboard", uc.GetLeaderboard)
	router.GET("/topcontestance", uc.GetTopCreators)
	router.PUT("/winner/user", uc.DeclareWinner)
}
