package dto

import (
	"time"

	"github.com/google/uuid"

	"skillswap/internal/repository"
)

type MatchResponse struct {
	ID                 uuid.UUID  `json:"id"`
	OfferSkillID       uuid.UUID  `json:"offer_skill_id"`
	RequestSkillID     uuid.UUID  `json:"request_skill_id"`
	OfferSkillTitle    string     `json:"offer_skill_title"`
	RequestSkillTitle  string     `json:"request_skill_title"`
	OffererID          uuid.UUID  `json:"offerer_id"`
	RequesterID        uuid.UUID  `json:"requester_id"`
	OffererUsername    string     `json:"offerer_username"`
	RequesterUsername  string     `json:"requester_username"`
	Status             string     `json:"status"`
	CompatibilityScore float64    `json:"compatibility_score"`
	Message            string     `json:"message"`
	CreatedAt          time.Time  `json:"created_at"`
	AcceptedAt         *time.Time `json:"accepted_at"`
	CompletedAt        *time.Time `json:"completed_at"`
}

func NewMatchResponse(r repository.MatchRow) MatchResponse {
	return MatchResponse{
		ID:                 r.ID,
		OfferSkillID:       r.OfferSkillID,
		RequestSkillID:     r.RequestSkillID,
		OfferSkillTitle:    r.OfferSkillTitle,
		RequestSkillTitle:  r.RequestSkillTitle,
		OffererID:          r.OffererID,
		RequesterID:        r.RequesterID,
		OffererUsername:    r.OffererUsername,
		RequesterUsername:  r.RequesterUsername,
		Status:             string(r.Status),
		CompatibilityScore: r.CompatibilityScore,
		Message:            r.Message,
		CreatedAt:          r.CreatedAt,
		AcceptedAt:         r.AcceptedAt,
		CompletedAt:        r.CompletedAt,
	}
}

func NewMatchListResponse(rows []repository.MatchRow) []MatchResponse {
	out := make([]MatchResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewMatchResponse(r))
	}
	return out
}
