package usecase

import (
	"context"
	"fmt"
	"log"

	"skillswap/internal/domain/matching"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// RecommendationResult carries the ranked candidates together with the
// preference profile they were ranked against.
type RecommendationResult struct {
	Preferences matching.Preferences
	Items       []ScoredSkill
}

type RecommendationUsecase interface {
	Recommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error)
}

// Recommendations derives a preference profile from the user's skills
// and concluded matches, pulls a narrowed candidate pool, and ranks it.
type Recommendations struct {
	skills  repository.SkillRepository
	matches repository.MatchRepository
	cache   cache.Store
	logger  *log.Logger
}

func NewRecommendationUsecase(
	skills repository.SkillRepository,
	matches repository.MatchRepository,
	store cache.Store,
	logger *log.Logger,
) *Recommendations {
	return &Recommendations{skills: skills, matches: matches, cache: store, logger: logger}
}

func (u *Recommendations) Recommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error) {
	if userID == uuid.Nil {
		return RecommendationResult{}, ErrUnauthorized
	}
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("recommendations:user:%s:%d", userID, limit)
	if u.cache != nil {
		var cached RecommendationResult
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	own, err := u.skills.ListActiveByUser(ctx, userID)
	if err != nil {
		u.logger.Printf("RecommendationUsecase | own skills query failed: user=%s err=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}

	history, err := u.matches.ListConcludedPairs(ctx, userID)
	if err != nil {
		u.logger.Printf("RecommendationUsecase | history query failed: user=%s err=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}

	ownSkills := make([]matching.Skill, 0, len(own))
	for _, s := range own {
		ownSkills = append(ownSkills, s.Skill)
	}

	prefs := matching.AnalyzePreferences(ownSkills, history)

	result := RecommendationResult{Preferences: prefs, Items: []ScoredSkill{}}
	if len(prefs.TopCategories) == 0 {
		// Nothing to personalize on yet; the client falls back to
		// browsing the public listing.
		return result, nil
	}

	rows, err := u.skills.ListRecommendationCandidates(ctx, repository.CandidateFilter{
		ExcludeUserID: userID,
		Categories:    prefs.TopCategories,
		Types:         prefs.PreferredTypes,
		Levels:        prefs.PreferredLevels,
		Limit:         limit * 3,
	})
	if err != nil {
		u.logger.Printf("RecommendationUsecase | candidate query failed: user=%s err=%v", userID, err)
		return RecommendationResult{}, ErrInternal
	}

	pool := make([]matching.Skill, 0, len(rows))
	byID := make(map[uuid.UUID]repository.SkillRow, len(rows))
	for _, r := range rows {
		pool = append(pool, r.Skill)
		byID[r.ID] = r
	}

	for _, ranked := range matching.RankCandidates(pool, prefs, limit) {
		result.Items = append(result.Items, ScoredSkill{Skill: byID[ranked.Skill.ID], Score: ranked.Score})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, result, 0)
	}
	return result, nil
}
