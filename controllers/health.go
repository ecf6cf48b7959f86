package controllers

import (
	"context"
	"net/http"
	"time"

	"contesthub/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger reports whether the document store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Home is the liveness message at /
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Contest server is running")
}

// Health pings the store. Failure details go to the log only.
func Health(store Pinger, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warnw("Store ping failed", "error", err, "requestID", c.GetString(middlewares.RequestIDKey))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
