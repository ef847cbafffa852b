package usecase

import (
	"context"
	"testing"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

func ownSkill(owner uuid.UUID, typ matching.SkillType, category string) repository.SkillRow {
	return repository.SkillRow{Skill: matching.Skill{
		ID:        uuid.New(),
		Type:      typ,
		Category:  category,
		Level:     matching.LevelIntermediate,
		Location:  matching.LocationOnline,
		Tags:      []string{"go"},
		CreatedAt: time.Now().UTC(),
		OwnerID:   owner,
	}}
}

func TestRecommendations_EmptyProfileReturnsNoItems(t *testing.T) {
	userID := uuid.New()
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{}}
	matches := &mockMatchRepo{}
	uc := NewRecommendationUsecase(skills, matches, nil, testLogger())

	res, err := uc.Recommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(res.Items))
	}
	if len(res.Preferences.TopCategories) != 0 {
		t.Fatalf("expected empty categories, got %v", res.Preferences.TopCategories)
	}
}

func TestRecommendations_PrefersOppositeTypeAndNarrowsPool(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	own1 := ownSkill(userID, matching.TypeOffer, "Music")
	own2 := ownSkill(userID, matching.TypeOffer, "Music")
	candidate := ownSkill(other, matching.TypeRequest, "Music")

	skills := &mockSkillRepo{
		byID: map[uuid.UUID]repository.SkillRow{
			own1.ID: own1, own2.ID: own2,
		},
		candidates: []repository.SkillRow{candidate},
	}
	matches := &mockMatchRepo{}
	uc := NewRecommendationUsecase(skills, matches, nil, testLogger())

	res, err := uc.Recommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Two offers, zero requests: the analyzer should ask for requests.
	if len(skills.candidateFilter.Types) != 1 || skills.candidateFilter.Types[0] != matching.TypeRequest {
		t.Fatalf("expected candidate pool narrowed to requests, got %v", skills.candidateFilter.Types)
	}
	if skills.candidateFilter.ExcludeUserID != userID {
		t.Fatalf("pool must exclude the requesting user")
	}

	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	if res.Items[0].Skill.ID != candidate.ID {
		t.Fatalf("unexpected recommended skill")
	}
	if res.Items[0].Score <= 0 || res.Items[0].Score > 1 {
		t.Fatalf("score out of range: %v", res.Items[0].Score)
	}
}

func TestRecommendations_RankedDescending(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	own := ownSkill(userID, matching.TypeOffer, "Music")

	hit := ownSkill(other, matching.TypeRequest, "Music")
	miss := ownSkill(other, matching.TypeRequest, "Cooking")
	miss.Tags = []string{"knife-skills"}

	skills := &mockSkillRepo{
		byID:       map[uuid.UUID]repository.SkillRow{own.ID: own},
		candidates: []repository.SkillRow{miss, hit},
	}
	uc := NewRecommendationUsecase(skills, &mockMatchRepo{}, nil, testLogger())

	res, err := uc.Recommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(res.Items))
	}
	if res.Items[0].Skill.ID != hit.ID {
		t.Fatalf("expected category hit ranked first")
	}
	if res.Items[0].Score < res.Items[1].Score {
		t.Fatalf("expected descending scores: %v then %v", res.Items[0].Score, res.Items[1].Score)
	}
}

func TestRecommendations_HistoryFeedsProfile(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	// No own skills, but one completed exchange in Art.
	pair := matching.MatchedPair{
		Offer:   ownSkill(other, matching.TypeOffer, "Art").Skill,
		Request: ownSkill(userID, matching.TypeRequest, "Art").Skill,
	}

	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{}, candidates: []repository.SkillRow{}}
	matches := &mockMatchRepo{pairs: []matching.MatchedPair{pair}}
	uc := NewRecommendationUsecase(skills, matches, nil, testLogger())

	res, err := uc.Recommendations(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Preferences.TopCategories) == 0 || res.Preferences.TopCategories[0] != "Art" {
		t.Fatalf("expected Art derived from history, got %v", res.Preferences.TopCategories)
	}
}
