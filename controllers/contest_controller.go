package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"unicode/utf8"

	"contesthub/db"
	"contesthub/structs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TotalCountHeader carries the number of contests returned by /totalContest
const TotalCountHeader = "X-Total-Count"

// ContestController serves contest management and the public listings
type ContestController struct {
	contests db.ContestStore
	log      *zap.SugaredLogger
}

func NewContestController(contests db.ContestStore, log *zap.SugaredLogger) *ContestController {
	return &ContestController{contests: contests, log: log}
}

func (cc *ContestController) CreateContest(c *gin.Context) {
	var request structs.ContestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := cc.contests.InsertContest(ctx, request.Contest())
	if err != nil {
		storeFailure(c, cc.log, "Failed to create contest", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateContest overwrites every contest field. An unknown id creates the
// contest under that id.
func (cc *ContestController) UpdateContest(c *gin.Context) {
	id, ok := objectIDParam(c, "contest")
	if !ok {
		return
	}

	var request structs.ContestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := cc.contests.UpsertContest(ctx, id, request.Contest())
	if err != nil {
		storeFailure(c, cc.log, "Failed to update contest", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteContest removes one contest. Its submissions are left in place.
func (cc *ContestController) DeleteContest(c *gin.Context) {
	id, ok := objectIDParam(c, "contest")
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := cc.contests.DeleteContest(ctx, id)
	if err != nil {
		storeFailure(c, cc.log, "Failed to delete contest", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (cc *ContestController) GetContest(c *gin.Context) {
	id, ok := objectIDParam(c, "contest")
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	contest, err := cc.contests.FindContest(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		storeFailure(c, cc.log, "Failed to fetch contest", err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// GetContestsByCreator lists the contests created by :email, newest first
func (cc *ContestController) GetContestsByCreator(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.ListContestsByCreator(ctx, c.Param("email"))
	if err != nil {
		storeFailure(c, cc.log, "Failed to fetch contests", err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// GetAllContests lists every contest regardless of status, newest first
func (cc *ContestController) GetAllContests(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.ListContests(ctx)
	if err != nil {
		storeFailure(c, cc.log, "Failed to fetch contests", err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// GetApprovedContests returns all publicly visible contests, optionally for
// one category. Clients count the array; the count is also in a header.
func (cc *ContestController) GetApprovedContests(c *gin.Context) {
	var query structs.CategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.ListApprovedContests(ctx, query.Cat)
	if err != nil {
		storeFailure(c, cc.log, "Failed to count contests", err)
		return
	}
	c.Header(TotalCountHeader, strconv.Itoa(len(contests)))
	c.JSON(http.StatusOK, contests)
}

// GetContestPage returns one page of approved contests, newest first
func (cc *ContestController) GetContestPage(c *gin.Context) {
	var query structs.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidInput(c, err)
		return
	}
	if query.Page > math.MaxInt64/query.Size {
		invalidInput(c, fmt.Errorf("page %d is out of range for size %d", query.Page, query.Size))
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.PageApprovedContests(ctx, query.Cat, query.Page, query.Size)
	if err != nil {
		storeFailure(c, cc.log, "Failed to fetch contests", err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// SearchContests matches the query against contest tags
func (cc *ContestController) SearchContests(c *gin.Context) {
	var query structs.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidInput(c, err)
		return
	}
	if !utf8.ValidString(query.Query) {
		invalidInput(c, errors.New("query must be valid UTF-8"))
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.SearchContestsByTag(ctx, query.Query)
	if err != nil {
		storeFailure(c, cc.log, "Failed to search contests", err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// GetTopContests lists the contests with the most participants
func (cc *ContestController) GetTopContests(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	contests, err := cc.contests.TopContests(ctx, topLimit)
	if err != nil {
		storeFailure(c, cc.log, "Failed to fetch top contests", err)
		return
	}
	c.JSON(http.StatusOK, contests)
}
