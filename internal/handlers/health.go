package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/bazaar-dev/bazaar/db"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	if err := db.Ping(c.Request.Context(), 2*time.Second); err != nil {
		status = http.StatusServiceUnavailable
		database = "unavailable"
		log.Printf("Health check database ping failed: %v", err)
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"message":   "Bazaar is running",
		"database":  database,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
