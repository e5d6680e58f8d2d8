package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck is a liveness probe; it never touches the database.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "API is running",
	})
}
