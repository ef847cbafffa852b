package matching

import (
	"github.com/google/uuid"
)

type ViolationKind string

const (
	ViolationSameUserSkills       ViolationKind = "same_user_skills"
	ViolationUserNotInvolved      ViolationKind = "user_not_involved"
	ViolationLevelIncompatible    ViolationKind = "level_incompatible"
	ViolationLocationIncompatible ViolationKind = "location_incompatible"
	ViolationSelfMatch            ViolationKind = "self_match_not_allowed"
	ViolationDuplicateMatch       ViolationKind = "duplicate_match"
)

// RuleViolation is an expected business outcome, not a fault. Callers
// pick it out with errors.As and map Kind to a user-facing message.
type RuleViolation struct {
	Kind    ViolationKind
	Message string
}

func (e *RuleViolation) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func violation(kind ViolationKind, msg string) *RuleViolation {
	return &RuleViolation{Kind: kind, Message: msg}
}

// DuplicateChecker reports whether a match with the given triple
// already exists. The validator never touches storage itself; the
// caller hands it a lookup capability. This is a best-effort pre-check:
// the database unique index on the triple is the authoritative guard.
type DuplicateChecker func(offerSkillID, requestSkillID, requesterID uuid.UUID) (bool, error)

// ValidationResult is the ready-to-persist payload for a valid match
// proposal. The offerer is whoever owns the offer skill, regardless of
// which participant proposed the match.
type ValidationResult struct {
	OffererID          uuid.UUID
	RequesterID        uuid.UUID
	CompatibilityScore float64

	// LowRatedParty flags a party with rating < 3.0 over more than 5
	// ratings. Advisory only; the caller logs it and proceeds.
	LowRatedParty bool
}

// ValidateMatch runs the ordered business checks for a proposed match
// and, when all pass, assigns the offerer/requester roles and computes
// the compatibility score. Checks fail fast in a fixed order.
//
// The level and location thresholds cannot trigger under the current
// three-tier scales (the sub-metrics never return below them); they are
// kept for finer-grained scales.
func ValidateMatch(offer, request Skill, actingUserID uuid.UUID, isDuplicate DuplicateChecker) (ValidationResult, error) {
	if offer.OwnerID == request.OwnerID {
		return ValidationResult{}, violation(ViolationSameUserSkills, "Cannot match skills from the same user")
	}

	involved := offer.OwnerID == actingUserID || request.OwnerID == actingUserID
	if !involved {
		return ValidationResult{}, violation(ViolationUserNotInvolved, "You must own one of the skills to create a match")
	}

	if LevelCompatibility(offer.Level, request.Level) < 0.3 {
		return ValidationResult{}, violation(ViolationLevelIncompatible, "Skill levels are too different for an effective match")
	}

	if LocationCompatibility(offer.Location, request.Location) < 0.2 {
		return ValidationResult{}, violation(ViolationLocationIncompatible, "Location preferences are incompatible")
	}

	if offer.OwnerID == actingUserID && request.OwnerID == actingUserID {
		return ValidationResult{}, violation(ViolationSelfMatch, "Cannot match your own skills with each other")
	}

	offererID := offer.OwnerID
	requesterID := request.OwnerID

	if isDuplicate != nil {
		exists, err := isDuplicate(offer.ID, request.ID, requesterID)
		if err != nil {
			return ValidationResult{}, err
		}
		if exists {
			return ValidationResult{}, violation(ViolationDuplicateMatch, "Match already exists")
		}
	}

	lowRated := (offer.OwnerRating < 3.0 && offer.OwnerTotalRatings > 5) ||
		(request.OwnerRating < 3.0 && request.OwnerTotalRatings > 5)

	return ValidationResult{
		OffererID:          offererID,
		RequesterID:        requesterID,
		CompatibilityScore: CompatibilityScore(offer, request),
		LowRatedParty:      lowRated,
	}, nil
}
