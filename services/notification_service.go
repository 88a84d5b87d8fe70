package services

import (
	"context"
	"fmt"
	"log"

	"editorial-content-api/config"
	"editorial-content-api/models"

	"gorm.io/gorm"
)

// NotificationService tells authors about editorial decisions on their work.
// Notifications are best-effort side channels: failures are logged and never
// fail the transition that triggered them.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a notification service on the given database.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

var decisionMessages = map[string]struct {
	title    string
	kind     string
	template string
}{
	ActionApproved:     {"Submission approved", "success", "Your submission %q has been approved."},
	ActionRejected:     {"Submission rejected", "error", "Your submission %q was not accepted."},
	ActionNeedsChanges: {"Changes requested", "warning", "An editor requested changes to your submission %q."},
	ActionShortlisted:  {"Submission shortlisted", "info", "Your submission %q has been shortlisted."},
	ActionPublished:    {"Submission published", "success", "Your submission %q is now published."},
}

// NotifyDecision records an in-app notification for the submission's author
// and sends a best-effort email. Unknown actions are ignored.
func (n *NotificationService) NotifyDecision(ctx context.Context, sub *models.Submission, action, notes string) {
	tpl, ok := decisionMessages[action]
	if !ok {
		return
	}

	message := fmt.Sprintf(tpl.template, sub.Title)
	if notes != "" {
		message += " Editor notes: " + notes
	}

	submissionID := sub.SubmissionID
	notification := models.Notification{
		UserID:              sub.AuthorID,
		Title:               tpl.title,
		Message:             message,
		Type:                tpl.kind,
		RelatedSubmissionID: &submissionID,
	}
	if err := n.db.WithContext(ctx).Create(&notification).Error; err != nil {
		log.Printf("notification: failed to store decision notification for submission %d: %v", sub.SubmissionID, err)
	}

	var author models.User
	if err := n.db.WithContext(ctx).
		Where("user_id = ? AND delete_at IS NULL", sub.AuthorID).
		First(&author).Error; err != nil {
		log.Printf("notification: author %d not found for submission %d, skipping email", sub.AuthorID, sub.SubmissionID)
		return
	}

	html := fmt.Sprintf("<p>Dear %s,</p><p>%s</p>", author.DisplayName(), message)
	if err := config.SendMail([]string{author.Email}, tpl.title, html); err != nil {
		log.Printf("notification: failed to email author %d: %v", sub.AuthorID, err)
	}
}
