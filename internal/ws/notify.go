package ws

import (
	"encoding/json"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

const (
	EventMatchCreated = "match_created"
	EventMatchUpdated = "match_updated"
)

type MatchEvent struct {
	Type               string    `json:"type"`
	MatchID            uuid.UUID `json:"match_id"`
	Status             string    `json:"status"`
	OfferSkillTitle    string    `json:"offer_skill_title"`
	RequestSkillTitle  string    `json:"request_skill_title"`
	CompatibilityScore float64   `json:"compatibility_score"`
	Timestamp          string    `json:"timestamp"`
}

// Notifier adapts the hub to the match usecase's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) MatchCreated(userID uuid.UUID, m repository.MatchRow) {
	n.send(userID, EventMatchCreated, m)
}

func (n *Notifier) MatchUpdated(userID uuid.UUID, m repository.MatchRow) {
	n.send(userID, EventMatchUpdated, m)
}

func (n *Notifier) send(userID uuid.UUID, eventType string, m repository.MatchRow) {
	if n == nil || n.hub == nil {
		return
	}

	evt := MatchEvent{
		Type:               eventType,
		MatchID:            m.ID,
		Status:             string(m.Status),
		OfferSkillTitle:    m.OfferSkillTitle,
		RequestSkillTitle:  m.RequestSkillTitle,
		CompatibilityScore: m.CompatibilityScore,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Send(userID, b)
}
