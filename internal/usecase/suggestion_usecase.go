package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

// ScoredSkill is a candidate counterpart with its match score.
type ScoredSkill struct {
	Skill repository.SkillRow
	Score float64
}

type SuggestionUsecase interface {
	SuggestedMatches(ctx context.Context, skillID uuid.UUID, limit int) ([]ScoredSkill, error)
}

// Suggestions ranks opposite-type counterparts for a single skill by
// match score. Results are cached per skill; skill writes invalidate.
type Suggestions struct {
	skills repository.SkillRepository
	cache  cache.Store
	logger *log.Logger

	now func() time.Time
}

func NewSuggestionUsecase(skills repository.SkillRepository, store cache.Store, logger *log.Logger) *Suggestions {
	return &Suggestions{skills: skills, cache: store, logger: logger, now: time.Now}
}

const suggestionPoolSize = 50

func (u *Suggestions) SuggestedMatches(ctx context.Context, skillID uuid.UUID, limit int) ([]ScoredSkill, error) {
	if skillID == uuid.Nil {
		return nil, ErrSkillNotFound
	}
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("skills:%s:matches:%d", skillID, limit)
	if u.cache != nil {
		var cached []ScoredSkill
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	source, err := u.skills.FindActiveByID(ctx, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, ErrInternal
	}

	pool, err := u.skills.ListMatchCandidates(ctx, source.OwnerID, source.Type.Opposite(), suggestionPoolSize)
	if err != nil {
		u.logger.Printf("SuggestionUsecase | candidate query failed: skill=%s err=%v", skillID, err)
		return nil, ErrInternal
	}

	now := u.now().UTC()
	scored := make([]ScoredSkill, 0, len(pool))
	for _, c := range pool {
		scored = append(scored, ScoredSkill{Skill: c, Score: matching.MatchScore(source.Skill, c.Skill, now)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, scored, 0)
	}
	return scored, nil
}
