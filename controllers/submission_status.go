package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"editorial-content-api/services"
	"editorial-content-api/utils"

	"github.com/gin-gonic/gin"
)

// UpdateSubmissionStatus is the transition entry point: it hands the request
// to the workflow service and maps its error taxonomy onto HTTP statuses.
// All rules (permission tables, exclusive assignment, history) live in the
// service; this handler only binds and translates.
func UpdateSubmissionStatus(workflow *services.WorkflowService) gin.HandlerFunc {
	return func(c *gin.Context) {
		submissionID, err := strconv.Atoi(c.Param("id"))
		if err != nil || submissionID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
			return
		}

		var req struct {
			TargetStatus string `json:"target_status" binding:"required"`
			Notes        string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		userID, err := currentUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
			return
		}

		submission, err := workflow.Execute(c.Request.Context(), &services.TransitionRequest{
			SubmissionID: submissionID,
			TargetStatus: req.TargetStatus,
			ActorID:      userID,
			ActorRole:    currentRole(c),
			Notes:        strings.TrimSpace(utils.SanitizeInput(req.Notes)),
		})
		if err != nil {
			status := transitionErrorStatus(err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"submission": submission,
		})
	}
}

func transitionErrorStatus(err error) int {
	var transitionErr *services.TransitionError
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &transitionErr):
		return http.StatusForbidden
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
