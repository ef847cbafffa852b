package dto

import (
	"time"

	"github.com/google/uuid"

	"skillswap/internal/repository"
	"skillswap/internal/usecase"
)

type SkillOwner struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
}

type SkillResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
	Level       string     `json:"level"`
	Location    string     `json:"location"`
	Duration    string     `json:"duration"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       SkillOwner `json:"owner"`
}

func NewSkillResponse(r repository.SkillRow) SkillResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return SkillResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Type:        string(r.Type),
		Level:       string(r.Level),
		Location:    string(r.Location),
		Duration:    r.Duration,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Owner: SkillOwner{
			ID:           r.OwnerID,
			Username:     r.OwnerUsername,
			FirstName:    r.OwnerFirstName,
			LastName:     r.OwnerLastName,
			Rating:       r.OwnerRating,
			TotalRatings: r.OwnerTotalRatings,
		},
	}
}

func NewSkillListResponse(rows []repository.SkillRow) []SkillResponse {
	out := make([]SkillResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewSkillResponse(r))
	}
	return out
}

type SkillPageResponse struct {
	Items  []SkillResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type ScoredSkillResponse struct {
	Skill SkillResponse `json:"skill"`
	Score float64       `json:"score"`
}

func NewScoredSkillListResponse(items []usecase.ScoredSkill) []ScoredSkillResponse {
	out := make([]ScoredSkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ScoredSkillResponse{Skill: NewSkillResponse(it.Skill), Score: it.Score})
	}
	return out
}
