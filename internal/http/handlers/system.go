package handlers

import (
	"net/http"
	"time"

	intconfig "transport-backend/internal/config"
	intdb "transport-backend/internal/db"
	"transport-backend/internal/http/middleware"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// GET /api/db-check pings the store and reports missing booking tables.
func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := intconfig.PingDB(ctx); err != nil {
		utils.LogError(middleware.GetRequestID(c), "system", "db_check", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Database unreachable"})
		return
	}

	missing, err := intdb.MissingTables(ctx, intconfig.DB, intconfig.Tables...)
	if err != nil {
		utils.LogError(middleware.GetRequestID(c), "system", "db_check", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "Schema check failed"})
		return
	}
	if len(missing) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "incomplete", "missingTables": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "database connection OK"})
}
