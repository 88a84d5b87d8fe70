package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"editorial-content-api/models"

	"gorm.io/gorm"
)

// WorkflowService is the single entry point for submission status
// transitions: it validates the move, enforces exclusive assignment, appends
// the history entry and persists everything in one conditional write.
type WorkflowService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewWorkflowService creates a workflow service on the given database.
func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// WithNotifier attaches a notification service; decisions then notify the
// submission's author after commit. Optional.
func (s *WorkflowService) WithNotifier(n *NotificationService) *WorkflowService {
	s.notifier = n
	return s
}

// TransitionRequest describes one requested status move.
type TransitionRequest struct {
	SubmissionID int
	TargetStatus string
	ActorID      int
	ActorRole    string
	Notes        string
}

// Execute runs the full transition pipeline. Nothing is written unless every
// validation step passes, and the final write only lands if the submission's
// version is still the one read at load time; a lost race surfaces as
// ErrConflict and leaves the stored submission untouched.
func (s *WorkflowService) Execute(ctx context.Context, req *TransitionRequest) (*models.Submission, error) {
	if req.ActorID <= 0 {
		return nil, newValidationError("transition requires an actor identity")
	}

	target, ok := NormalizeStatus(req.TargetStatus)
	if !ok {
		return nil, newValidationError("unrecognized target status %q", req.TargetStatus)
	}

	var sub models.Submission
	if err := s.db.WithContext(ctx).
		Where("submission_id = ? AND deleted_at IS NULL", req.SubmissionID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission %d: %w", req.SubmissionID, err)
	}

	action := TransitionAction(sub.Status, target)

	resolved, err := ResolveRole(ctx, s.db, req.ActorID, req.ActorRole, action)
	if err != nil {
		return nil, err
	}

	decision := CanTransition(resolved.Role, sub.Status, target, req.ActorID, sub.AuthorID)
	if !decision.Allowed {
		return nil, &TransitionError{
			Role:   resolved.Role,
			From:   sub.Status,
			To:     target,
			Reason: decision.Reason,
		}
	}

	// Exclusive-assignment guard. The conditional write below makes the
	// check race-free: a competitor that assigned the submission first also
	// bumped its version.
	if target == StatusInProgress && sub.IsAssigned() {
		return nil, fmt.Errorf("submission already being worked by user %d: %w", *sub.AssignedTo, ErrConflict)
	}

	loadedVersion := sub.Version
	now := time.Now()

	entry, err := AppendHistory(&sub, action, target, req.ActorID, resolved.Role, req.Notes, now)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	result := tx.Model(&models.Submission{}).
		Where("submission_id = ? AND version = ? AND deleted_at IS NULL", sub.SubmissionID, loadedVersion).
		Updates(map[string]interface{}{
			"status":         sub.Status,
			"assigned_to":    sub.AssignedTo,
			"assigned_at":    sub.AssignedAt,
			"reviewed_by":    sub.ReviewedBy,
			"reviewed_at":    sub.ReviewedAt,
			"revision_notes": sub.RevisionNotes,
			"submitted_at":   sub.SubmittedAt,
			"published_at":   sub.PublishedAt,
			"version":        loadedVersion + 1,
			"updated_at":     now,
		})
	if result.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update submission %d: %w", sub.SubmissionID, result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, fmt.Errorf("submission %d changed since it was read: %w", sub.SubmissionID, ErrConflict)
	}

	if err := tx.Create(entry).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	if s.notifier != nil && (IsReviewDecisionAction(action) || action == ActionPublished) {
		s.notifier.NotifyDecision(ctx, &sub, action, req.Notes)
	}

	return s.reload(ctx, sub.SubmissionID)
}

// reload returns the submission with identities and ordered history
// populated for display.
func (s *WorkflowService) reload(ctx context.Context, submissionID int) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Assignee").
		Preload("Reviewer").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("history_id ASC")
		}).
		Where("submission_id = ? AND deleted_at IS NULL", submissionID).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to reload submission %d: %w", submissionID, err)
	}
	return &sub, nil
}
