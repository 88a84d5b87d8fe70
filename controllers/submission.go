package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"editorial-content-api/config"
	"editorial-content-api/models"
	"editorial-content-api/services"
	"editorial-content-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var submissionTypes = map[string]bool{
	"poem":    true,
	"essay":   true,
	"article": true,
}

// CreateSubmission creates a new draft owned by the caller.
func CreateSubmission(c *gin.Context) {
	var req struct {
		Title          string `json:"title" binding:"required"`
		Content        string `json:"content" binding:"required"`
		SubmissionType string `json:"submission_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submissionType := strings.ToLower(strings.TrimSpace(req.SubmissionType))
	if !submissionTypes[submissionType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission type must be poem, essay or article"})
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}

	now := time.Now()
	submission := models.Submission{
		SubmissionNumber: "SUB-" + strings.ToUpper(uuid.NewString()[:8]),
		SubmissionType:   submissionType,
		Title:            utils.SanitizeInput(req.Title),
		Content:          req.Content,
		AuthorID:         userID,
		Status:           services.StatusDraft,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmission returns one submission with its ordered status history.
// Authors see only their own work; editorial staff see everything.
func GetSubmission(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	err = config.DB.Preload("Author").
		Preload("Assignee").
		Preload("Reviewer").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("history_id ASC")
		}).
		Preload("History.Actor").
		Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submission"})
		return
	}

	role := currentRole(c)
	userID, _ := currentUserID(c)
	if role == services.RoleAuthor && submission.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only view your own submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"submission":          submission,
		"allowed_transitions": services.AllowedTargets(role, submission.Status),
	})
}

// ListSubmissions lists the caller's own submissions for authors, or a
// status-filtered queue for editorial staff.
func ListSubmissions(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User context missing"})
		return
	}
	role := currentRole(c)

	query := config.DB.Preload("Author").Preload("Assignee").
		Where("deleted_at IS NULL")

	if role == services.RoleAuthor {
		query = query.Where("author_id = ?", userID)
	}

	if rawStatus := strings.TrimSpace(c.Query("status")); rawStatus != "" {
		status, ok := services.NormalizeStatus(rawStatus)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var submissions []models.Submission
	if err := query.Order("updated_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

func currentUserID(c *gin.Context) (int, error) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, errors.New("user context missing")
	}
	userID, ok := value.(int)
	if !ok {
		return 0, errors.New("invalid user context")
	}
	return userID, nil
}

func currentRole(c *gin.Context) string {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return services.NormalizeRole(role)
}
