package routes

import (
	"contesthub/controllers"

	"github.com/gin-gonic/gin"
)

func SetupSubmissionRoutes(router *gin.Engine, sc *controllers.SubmissionController) {
	router.POST("/submit", sc.CreateSubmission)
	router.GET("/submission/:id", sc.GetSubmissionsByContest)
	router.PUT("/winner/order", sc.DeclareWinner)
	router.GET("/allWinsubmission", sc.GetWinningSubmissions)
}
