package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"editorial-content-api/services"

	"github.com/gin-gonic/gin"
)

// RecordSubmissionView logs one public view event for a submission.
func RecordSubmissionView(views *services.ViewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionID, err := strconv.Atoi(c.Param("id"))
		if err != nil || submissionID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
			return
		}

		err = views.RecordView(c.Request.Context(), services.TargetTypeSubmission, submissionID)
		if err != nil {
			if errors.Is(err, services.ErrSubmissionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetTrending returns submissions ranked by recent view velocity.
func GetTrending(views *services.ViewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		windowDays, _ := strconv.Atoi(c.DefaultQuery("window", "7"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		result, err := views.Rank(c.Request.Context(), services.TargetTypeSubmission, windowDays, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trending"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"trending": result,
		})
	}
}
