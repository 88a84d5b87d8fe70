package services

import "strings"

// Canonical submission lifecycle statuses. The set is closed: every stored
// status is one of these strings.
const (
	StatusDraft        = "draft"
	StatusSubmitted    = "submitted"
	StatusInProgress   = "in_progress"
	StatusShortlisted  = "shortlisted"
	StatusNeedsChanges = "needs_changes"
	StatusApproved     = "approved"
	StatusRejected     = "rejected"
	StatusPublished    = "published"
	StatusArchived     = "archived"
)

// AllStatuses lists every canonical status, in lifecycle order.
var AllStatuses = []string{
	StatusDraft,
	StatusSubmitted,
	StatusInProgress,
	StatusShortlisted,
	StatusNeedsChanges,
	StatusApproved,
	StatusRejected,
	StatusPublished,
	StatusArchived,
}

// statusAliases maps the retired status vocabulary onto the canonical one.
// Aliases are accepted on input and normalized away before anything is
// stored or compared.
var statusAliases = map[string]string{
	"pending_review": StatusSubmitted,
	"pending":        StatusSubmitted,
	"under_review":   StatusInProgress,
	"needs_revision": StatusNeedsChanges,
	"revision":       StatusNeedsChanges,
	"accepted":       StatusApproved,
}

// NormalizeStatus resolves raw input (canonical or legacy alias) to a
// canonical status. The second return is false when the value is not a
// recognized status at all.
func NormalizeStatus(raw string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := statusAliases[name]; ok {
		return alias, true
	}
	for _, status := range AllStatuses {
		if name == status {
			return status, true
		}
	}
	return "", false
}

// Transition actions recorded in the status history ledger. Actions are
// richer than statuses: a move into `submitted` is logged as "submitted",
// "resubmitted" or "assignment_released" depending on where it came from.
const (
	ActionSubmitted          = "submitted"
	ActionResubmitted        = "resubmitted"
	ActionMovedToInProgress  = "moved_to_in_progress"
	ActionAssignmentReleased = "assignment_released"
	ActionShortlisted        = "shortlisted"
	ActionApproved           = "approved"
	ActionRejected           = "rejected"
	ActionNeedsChanges       = "needs_changes"
	ActionPublished          = "published"
	ActionArchived           = "archived"
	ActionReturnedToDraft    = "returned_to_draft"
)

// TransitionAction names the action for a (current -> target) status move.
// Both arguments must already be canonical.
func TransitionAction(current, target string) string {
	switch target {
	case StatusSubmitted:
		switch current {
		case StatusNeedsChanges:
			return ActionResubmitted
		case StatusInProgress:
			return ActionAssignmentReleased
		default:
			return ActionSubmitted
		}
	case StatusInProgress:
		return ActionMovedToInProgress
	case StatusShortlisted:
		return ActionShortlisted
	case StatusApproved:
		return ActionApproved
	case StatusRejected:
		return ActionRejected
	case StatusNeedsChanges:
		return ActionNeedsChanges
	case StatusPublished:
		return ActionPublished
	case StatusArchived:
		return ActionArchived
	case StatusDraft:
		return ActionReturnedToDraft
	default:
		return target
	}
}

// IsReviewDecisionAction reports whether an action counts as a reviewer
// judgment and therefore stamps reviewed_at/reviewed_by.
func IsReviewDecisionAction(action string) bool {
	switch action {
	case ActionApproved, ActionRejected, ActionNeedsChanges, ActionShortlisted:
		return true
	}
	return false
}
