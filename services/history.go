package services

import (
	"time"

	"editorial-content-api/models"
)

// AppendHistory applies a validated transition to the submission in memory
// and appends the matching ledger entry. Persistence is the workflow
// service's job; this function only mutates the struct.
//
// Side effects applied together with the append:
//   - status moves to newStatus
//   - review-decision actions stamp reviewed_at/reviewed_by
//   - entering in_progress stamps assigned_to/assigned_at; every exit from
//     in_progress clears both
//   - needs_changes stores the revision notes; returning to draft or any
//     (re)submission clears them
//   - first submission and publication stamp their respective timestamps
func AppendHistory(sub *models.Submission, action, newStatus string, actorID int, actorRole string, notes string, now time.Time) (*models.SubmissionStatusHistory, error) {
	if actorID <= 0 {
		return nil, newValidationError("history entry requires an actor identity")
	}
	if !IsKnownRole(actorRole) {
		return nil, newValidationError("unrecognized actor role %q", actorRole)
	}

	previous := sub.Status
	sub.Status = newStatus
	sub.UpdatedAt = now

	if IsReviewDecisionAction(action) {
		reviewedBy := actorID
		reviewedAt := now
		sub.ReviewedBy = &reviewedBy
		sub.ReviewedAt = &reviewedAt
	}

	switch {
	case newStatus == StatusInProgress:
		assignee := actorID
		assignedAt := now
		sub.AssignedTo = &assignee
		sub.AssignedAt = &assignedAt
	case previous == StatusInProgress:
		sub.AssignedTo = nil
		sub.AssignedAt = nil
	}

	switch action {
	case ActionNeedsChanges:
		if notes != "" {
			revisionNotes := notes
			sub.RevisionNotes = &revisionNotes
		}
	case ActionSubmitted, ActionResubmitted:
		submittedAt := now
		sub.SubmittedAt = &submittedAt
		sub.RevisionNotes = nil
	case ActionReturnedToDraft:
		sub.RevisionNotes = nil
	case ActionPublished:
		publishedAt := now
		sub.PublishedAt = &publishedAt
	}

	entry := models.SubmissionStatusHistory{
		SubmissionID: sub.SubmissionID,
		Action:       action,
		Status:       newStatus,
		ActorID:      actorID,
		ActorRole:    actorRole,
		CreatedAt:    now,
	}
	if notes != "" {
		entryNotes := notes
		entry.Notes = &entryNotes
	}

	sub.History = append(sub.History, entry)
	return &sub.History[len(sub.History)-1], nil
}
