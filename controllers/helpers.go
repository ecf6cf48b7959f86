package controllers

import (
	"context"
	"net/http"
	"time"

	"contesthub/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const dbTimeout = 10 * time.Second

// topLimit is the size of the "top" listings
const topLimit = 6

func dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

func invalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
}

// storeFailure logs err with the request id and answers 500 with message
func storeFailure(c *gin.Context, log *zap.SugaredLogger, message string, err error) {
	log.Errorw(message, "error", err, "requestID", c.GetString(middlewares.RequestIDKey))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// objectIDParam parses the :id path parameter, answering 400 when it is not
// a valid ObjectID
func objectIDParam(c *gin.Context, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}
