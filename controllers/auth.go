package controllers

import (
	"errors"
	"net/http"

	"contesthub/structs"
	"contesthub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController issues session tokens
type AuthController struct {
	issuer *utils.TokenIssuer
	log    *zap.SugaredLogger
}

func NewAuthController(issuer *utils.TokenIssuer, log *zap.SugaredLogger) *AuthController {
	return &AuthController{issuer: issuer, log: log}
}

// IssueToken signs the request body as the token claims and sets it as an
// HTTP-only cookie without an expiry attribute
func (ac *AuthController) IssueToken(c *gin.Context) {
	var request structs.TokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		invalidInput(c, err)
		return
	}
	if request == nil {
		invalidInput(c, errors.New("claims must be a JSON object"))
		return
	}

	token, err := ac.issuer.Issue(request)
	if err != nil {
		ac.log.Errorf("Failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(utils.TokenCookieName, token, 0, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"msg": "Succeed"})
}
