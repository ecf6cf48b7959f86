package controllers

import (
	"errors"
	"net/http"

	"contesthub/db"
	"contesthub/models"
	"contesthub/structs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserController serves the user, leaderboard and user-side winner endpoints
type UserController struct {
	users db.UserStore
	log   *zap.SugaredLogger
}

func NewUserController(users db.UserStore, log *zap.SugaredLogger) *UserController {
	return &UserController{users: users, log: log}
}

// CreateUser registers a user unless the email is already taken, in which
// case nothing is inserted and the null-insert result is returned
func (uc *UserController) CreateUser(c *gin.Context) {
	var request structs.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	_, err := uc.users.FindUserByEmail(ctx, request.Email)
	if err == nil {
		c.JSON(http.StatusOK, models.ExistingUserResult{Message: "user already exists"})
		return
	}
	if !errors.Is(err, db.ErrNotFound) {
		storeFailure(c, uc.log, "Failed to look up user", err)
		return
	}

	result, err := uc.users.CreateUser(ctx, request.User())
	if err != nil {
		storeFailure(c, uc.log, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateUser overwrites the profile of the user with the path email
func (uc *UserController) UpdateUser(c *gin.Context) {
	var request structs.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	result, err := uc.users.UpsertUserByEmail(ctx, c.Param("email"), request.User())
	if err != nil {
		storeFailure(c, uc.log, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser returns the user document, or null when there is none
func (uc *UserController) GetUser(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	user, err := uc.users.FindUserByEmail(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		storeFailure(c, uc.log, "Failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) GetUsers(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		storeFailure(c, uc.log, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetLeaderboard lists every user by win count, highest first
func (uc *UserController) GetLeaderboard(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	users, err := uc.users.ListUsersByWins(ctx)
	if err != nil {
		storeFailure(c, uc.log, "Failed to fetch leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetTopCreators lists the users who added the most contests
func (uc *UserController) GetTopCreators(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	users, err := uc.users.TopContestCreators(ctx, topLimit)
	if err != nil {
		storeFailure(c, uc.log, "Failed to fetch top contest creators", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeclareWinner credits a win to the user and marks their participation
// record for the contest. The matching submission is updated separately
// through SubmissionController.DeclareWinner.
func (uc *UserController) DeclareWinner(c *gin.Context) {
	var query structs.WinnerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		invalidInput(c, err)
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if _, err := uc.users.FindUserByEmail(ctx, query.Email); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		storeFailure(c, uc.log, "Failed to look up user", err)
		return
	}

	result, err := uc.users.RecordUserWin(ctx, query.Email, query.ContestID)
	if err != nil {
		storeFailure(c, uc.log, "Failed to record win", err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contest entry not found for user"})
		return
	}

	uc.log.Infof("Recorded win for %s in contest %s", query.Email, query.ContestID)
	c.JSON(http.StatusOK, result)
}
