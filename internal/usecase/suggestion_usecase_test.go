package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

func TestSuggestedMatches_RanksByMatchScore(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	sourceID := uuid.New()

	source := skillFixture(sourceID, owner, matching.TypeOffer)

	strong := skillFixture(uuid.New(), other, matching.TypeRequest)
	weak := skillFixture(uuid.New(), other, matching.TypeRequest)
	weak.Category = "Cooking"
	weak.Tags = []string{"knife-skills"}
	weak.Level = matching.LevelBeginner
	weak.CreatedAt = time.Now().UTC().Add(-120 * 24 * time.Hour)

	skills := &mockSkillRepo{
		byID:       map[uuid.UUID]repository.SkillRow{sourceID: source},
		candidates: []repository.SkillRow{weak, strong},
	}
	uc := NewSuggestionUsecase(skills, nil, testLogger())

	items, err := uc.SuggestedMatches(context.Background(), sourceID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(items))
	}
	if items[0].Skill.ID != strong.ID {
		t.Fatalf("expected strong candidate first")
	}
	if items[0].Score <= items[1].Score {
		t.Fatalf("expected strictly better score first: %v vs %v", items[0].Score, items[1].Score)
	}
}

func TestSuggestedMatches_Limit(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	sourceID := uuid.New()
	source := skillFixture(sourceID, owner, matching.TypeOffer)

	candidates := make([]repository.SkillRow, 0, 5)
	for i := 0; i < 5; i++ {
		candidates = append(candidates, skillFixture(uuid.New(), other, matching.TypeRequest))
	}

	skills := &mockSkillRepo{
		byID:       map[uuid.UUID]repository.SkillRow{sourceID: source},
		candidates: candidates,
	}
	uc := NewSuggestionUsecase(skills, nil, testLogger())

	items, err := uc.SuggestedMatches(context.Background(), sourceID, 3)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(items))
	}
}

func TestSuggestedMatches_SourceNotFound(t *testing.T) {
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{}}
	uc := NewSuggestionUsecase(skills, nil, testLogger())

	_, err := uc.SuggestedMatches(context.Background(), uuid.New(), 10)
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}
