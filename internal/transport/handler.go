package transport

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-image-analyzer/internal/config"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/repository"
)

type listResponse struct {
	Count   int                   `json:"count"`
	Results []repository.ListItem `json:"results"`
}

// NewHandler wires the read-only query endpoints. The query path goes
// straight to the repository and bypasses the orchestration engine.
func NewHandler(reports repository.ReportRepository, cfg *config.Config) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", healthCheck)
	r.GET("/results", listResults(reports, cfg))
	r.GET("/results/:id", getResult(reports, cfg))

	return r
}

func getResult(reports repository.ReportRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		id := c.Param("id")
		rep, err := reports.GetReport(ctx, id)
		if err != nil {
			// Matches the original endpoint: every failure, including a
			// lookup miss, produces the same error body. The repository
			// error kind still tells them apart internally.
			logger.WithError(err).WithField("id", id).Error("Failed to retrieve result")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, rep)
	}
}

func listResults(reports repository.ReportRepository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid limit: " + raw})
				return
			}
			limit = parsed
		}

		items, err := reports.ListReports(ctx, limit)
		if err != nil {
			logger.WithError(err).Error("Failed to list results")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, listResponse{Count: len(items), Results: items})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		}).Info("Request handled")
	}
}
