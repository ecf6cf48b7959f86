package routes

import (
	"contesthub/controllers"
	"contesthub/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupContestRoutes(router *gin.Engine, cc *controllers.ContestController, auth gin.HandlerFunc, role RoleGuard) {
	router.POST("/addcontest", cc.CreateContest)
	router.GET("/contest/:id", cc.GetContest)
	router.PUT("/contest/:id", cc.UpdateContest)
	router.DELETE("/contest/delete/:id", cc.DeleteContest)

	router.GET("/allcontests", auth, role(middlewares.ResourceContest, middlewares.ActionRead), cc.GetAllContests)
	router.GET("/contests/:email", auth, cc.GetContestsByCreator)

	// Public listings only show approved contests
	router.GET("/totalContest", cc.GetApprovedContests)
	router.GET("/usersAllContest", cc.GetContestPage)
	router.GET("/usersAllContest/search", cc.SearchContests)
	router.GET("/topContest", cc.GetTopContests)
}
