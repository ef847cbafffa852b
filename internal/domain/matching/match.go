package matching

import (
	"time"

	"github.com/google/uuid"
)

// Match is the persisted outcome of a validated proposal. The matching
// package derives it; storage and mutation belong to the caller.
type Match struct {
	ID             uuid.UUID
	OfferSkillID   uuid.UUID
	RequestSkillID uuid.UUID
	RequesterID    uuid.UUID
	OffererID      uuid.UUID
	Status         Status

	// CompatibilityScore is in [0,1], two decimal places.
	CompatibilityScore float64

	Message     string
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	CompletedAt *time.Time
}

// Participant reports whether the user is on either side of the match.
func (m Match) Participant(userID uuid.UUID) bool {
	return m.OffererID == userID || m.RequesterID == userID
}
