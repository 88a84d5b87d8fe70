package services

import (
	"fmt"
	"strings"
)

// Editorial roles. The permission tables below are keyed by these names;
// RoleUser is never a table key — it exists only as the non-review fallback
// value recorded in history when the directory cannot resolve an actor.
const (
	RoleAuthor   = "author"
	RoleCurator  = "curator"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
	RoleUser     = "user"
)

// Per-role transition tables: {current status -> permitted target statuses}.
// The reviewer and admin tables deliberately repeat the rows of the roles
// beneath them instead of being computed unions, so each role's full
// authority can be read (and audited) in one place.

var authorTransitions = map[string][]string{
	StatusDraft:        {StatusSubmitted},
	StatusNeedsChanges: {StatusDraft, StatusSubmitted},
}

var curatorTransitions = map[string][]string{
	StatusSubmitted:  {StatusInProgress},
	StatusInProgress: {StatusSubmitted, StatusShortlisted, StatusNeedsChanges},
}

var reviewerTransitions = map[string][]string{
	StatusSubmitted:   {StatusInProgress},
	StatusInProgress:  {StatusSubmitted, StatusShortlisted, StatusNeedsChanges, StatusApproved, StatusRejected},
	StatusShortlisted: {StatusApproved, StatusRejected, StatusNeedsChanges},
}

var adminTransitions = map[string][]string{
	StatusSubmitted:   {StatusInProgress, StatusRejected},
	StatusInProgress:  {StatusSubmitted, StatusShortlisted, StatusNeedsChanges, StatusApproved, StatusRejected},
	StatusShortlisted: {StatusApproved, StatusRejected, StatusNeedsChanges},
	StatusApproved:    {StatusPublished, StatusArchived},
	StatusPublished:   {StatusArchived},
	StatusRejected:    {StatusArchived},
	StatusArchived:    {StatusPublished},
}

var roleTransitions = map[string]map[string][]string{
	RoleAuthor:   authorTransitions,
	RoleCurator:  curatorTransitions,
	RoleReviewer: reviewerTransitions,
	RoleAdmin:    adminTransitions,
}

// NormalizeRole canonicalizes a role name for table lookup.
func NormalizeRole(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsKnownRole reports whether the role may appear in a history entry.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAuthor, RoleCurator, RoleReviewer, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// TransitionDecision is the validator verdict. Reason is set only on denial.
type TransitionDecision struct {
	Allowed bool
	Reason  string
}

// CanTransition decides whether an actor with the given role may move a
// submission from current to target. Pure table lookup; no I/O.
//
// Authors may only ever act on their own submissions, so an author whose id
// differs from the owner's is denied before the table is consulted.
func CanTransition(role, current, target string, actorID, ownerID int) TransitionDecision {
	role = NormalizeRole(role)

	table, ok := roleTransitions[role]
	if !ok {
		return TransitionDecision{
			Reason: fmt.Sprintf("role %q has no transition authority", role),
		}
	}

	if role == RoleAuthor && actorID != ownerID {
		return TransitionDecision{
			Reason: "authors may only modify their own submissions",
		}
	}

	for _, allowed := range table[current] {
		if allowed == target {
			return TransitionDecision{Allowed: true}
		}
	}

	return TransitionDecision{
		Reason: fmt.Sprintf("role %s cannot move a submission from %s to %s", role, current, target),
	}
}

// AllowedTargets returns the targets a role may reach from the given status.
// Used by the API to tell clients which actions to offer.
func AllowedTargets(role, current string) []string {
	table, ok := roleTransitions[NormalizeRole(role)]
	if !ok {
		return nil
	}
	targets := table[current]
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}
