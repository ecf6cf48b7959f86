package controllers

import (
	"net/http"

	"contesthub/db"
	"contesthub/models"
	"contesthub/structs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmissionController serves contest entries and the submission-side winner
// endpoint
type SubmissionController struct {
	submissions db.SubmissionStore
	log         *zap.SugaredLogger
}

func NewSubmissionController(submissions db.SubmissionStore, log *zap.SugaredLogger) *SubmissionController {
	return &SubmissionController{submissions: submissions, log: log}
}

// CreateSubmission stores the entry with every field the client sent
func (sc *SubmissionController) CreateSubmission(c *gin.Context) {
	var submission models.Submission
	if err := c.ShouldBindJSON(&submission); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := sc.submissions.InsertSubmission(ctx, &submission)
	if err != nil {
		storeFailure(c, sc.log, "Failed to create submission", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSubmissionsByContest lists the submissions whose contestID is :id
func (sc *SubmissionController) GetSubmissionsByContest(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	submissions, err := sc.submissions.ListSubmissionsByContest(ctx, c.Param("id"))
	if err != nil {
		storeFailure(c, sc.log, "Failed to fetch submissions", err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// DeclareWinner marks the (email, contestID) submission as won, creating it
// if needed. Repeating the call changes nothing.
func (sc *SubmissionController) DeclareWinner(c *gin.Context) {
	var query structs.WinnerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := sc.submissions.RecordSubmissionWin(ctx, query.Email, query.ContestID)
	if err != nil {
		storeFailure(c, sc.log, "Failed to record winning submission", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (sc *SubmissionController) GetWinningSubmissions(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	submissions, err := sc.submissions.ListWinningSubmissions(ctx)
	if err != nil {
		storeFailure(c, sc.log, "Failed to fetch winners", err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
