package services

import (
	"context"
	"errors"
	"log"

	"editorial-content-api/models"

	"gorm.io/gorm"
)

// ResolvedRole is the outcome of resolving an actor's role for a history
// entry. WasFallback marks entries whose role could not be confirmed against
// the user directory.
type ResolvedRole struct {
	Role        string
	WasFallback bool
}

// ResolveRole determines the role to record for a transition.
//
// When the caller supplies a role it is validated against the closed role set
// and used as-is. When it is omitted the user directory is consulted; if the
// actor is missing there (historical data gaps) or the lookup errors, the
// transition must not be blocked on directory availability — a deterministic
// guess is recorded instead ("reviewer" for review-decision actions, "user"
// otherwise) and the degradation is logged, never hidden.
func ResolveRole(ctx context.Context, db *gorm.DB, actorID int, suppliedRole, action string) (ResolvedRole, error) {
	if supplied := NormalizeRole(suppliedRole); supplied != "" {
		if !IsKnownRole(supplied) {
			return ResolvedRole{}, newValidationError("unrecognized actor role %q", supplied)
		}
		return ResolvedRole{Role: supplied}, nil
	}

	var user models.User
	err := db.WithContext(ctx).Preload("Role").
		Where("user_id = ? AND delete_at IS NULL", actorID).
		First(&user).Error
	if err == nil {
		if role := NormalizeRole(user.Role.Role); IsKnownRole(role) {
			return ResolvedRole{Role: role}, nil
		}
		log.Printf("role resolution: user %d carries unknown role %q, falling back", actorID, user.Role.Role)
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("role resolution: actor %d not found in user directory, falling back", actorID)
	} else {
		log.Printf("role resolution: directory lookup failed for actor %d (%v), falling back", actorID, err)
	}

	fallback := RoleUser
	if IsReviewDecisionAction(action) {
		fallback = RoleReviewer
	}
	log.Printf("role resolution: recording fallback role %q for actor %d action %q", fallback, actorID, action)
	return ResolvedRole{Role: fallback, WasFallback: true}, nil
}
