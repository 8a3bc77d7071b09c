package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"noteapi/utils"
)

var startTime = time.Now()

// Health reports process uptime, CPU usage and Mongo connection pool
// counters. Used by deployment probes; no store query is made.
func Health(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":   "ok",
		"uptime":   time.Since(startTime).Round(time.Second).String(),
		"cpuUsage": utils.GetCPUUsage(),
		"mongo":    utils.GetMongoMetrics(),
	})
}
