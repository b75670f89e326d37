package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvbf/league-manager/pkg/logging"
)

func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", args...)
			return
		}
		log.Debug("request", args...)
	}
}
