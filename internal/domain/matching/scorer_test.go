package matching

import (
	"math"
	"strings"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLevelCompatibility_SymmetricAndBounded(t *testing.T) {
	levels := []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
	allowed := map[float64]bool{1.0: true, 0.8: true, 0.3: true}

	for _, a := range levels {
		for _, b := range levels {
			got := LevelCompatibility(a, b)
			if got != LevelCompatibility(b, a) {
				t.Fatalf("not symmetric for (%s,%s)", a, b)
			}
			if !allowed[got] {
				t.Fatalf("unexpected value %v for (%s,%s)", got, a, b)
			}
		}
	}

	if got := LevelCompatibility(LevelBeginner, LevelBeginner); got != 1.0 {
		t.Fatalf("same level: expected 1.0, got %v", got)
	}
	if got := LevelCompatibility(LevelBeginner, LevelIntermediate); got != 0.8 {
		t.Fatalf("adjacent levels: expected 0.8, got %v", got)
	}
	if got := LevelCompatibility(LevelBeginner, LevelAdvanced); got != 0.3 {
		t.Fatalf("far levels: expected 0.3, got %v", got)
	}
}

func TestLocationCompatibility_SymmetricAndBounded(t *testing.T) {
	locations := []Location{LocationOnline, LocationInPerson, LocationBoth}
	allowed := map[float64]bool{1.0: true, 0.8: true, 0.2: true}

	for _, a := range locations {
		for _, b := range locations {
			got := LocationCompatibility(a, b)
			if got != LocationCompatibility(b, a) {
				t.Fatalf("not symmetric for (%s,%s)", a, b)
			}
			if !allowed[got] {
				t.Fatalf("unexpected value %v for (%s,%s)", got, a, b)
			}
		}
	}

	if got := LocationCompatibility(LocationOnline, LocationInPerson); got != 0.2 {
		t.Fatalf("incompatible locations: expected 0.2, got %v", got)
	}
	if got := LocationCompatibility(LocationOnline, LocationBoth); got != 0.8 {
		t.Fatalf("flexible location: expected 0.8, got %v", got)
	}
}

func TestRatingScore_ColdStartDefault(t *testing.T) {
	if got := RatingScore(5.0, 0); got != 0.5 {
		t.Fatalf("expected 0.5 for zero ratings, got %v", got)
	}
	if got := RatingScore(1.0, 2); got != 0.5 {
		t.Fatalf("expected 0.5 below three ratings, got %v", got)
	}
}

func TestRatingScore_BlendsRatingAndConfidence(t *testing.T) {
	// 4.0/5 * 0.7 + min(10/10,1) * 0.3
	if got := RatingScore(4.0, 10); !almostEqual(got, 0.86) {
		t.Fatalf("expected 0.86, got %v", got)
	}
	// confidence caps at 1 past ten ratings
	if got := RatingScore(4.0, 50); !almostEqual(got, 0.86) {
		t.Fatalf("expected 0.86 with capped confidence, got %v", got)
	}
}

func TestRatingScore_MonotonicInRating(t *testing.T) {
	prev := -1.0
	for r := 0.0; r <= 5.0; r += 0.5 {
		got := RatingScore(r, 8)
		if got < prev {
			t.Fatalf("not monotonic at rating=%v: %v < %v", r, got, prev)
		}
		prev = got
	}
}

func TestRatingBalance(t *testing.T) {
	if got := RatingBalance(4.8, 4.6); !almostEqual(got, 0.96) {
		t.Fatalf("expected 0.96, got %v", got)
	}
	if got := RatingBalance(5.0, 0.0); !almostEqual(got, 0.0) {
		t.Fatalf("expected 0.0 for max gap, got %v", got)
	}
	if got := RatingBalance(3.0, 3.0); got != 1.0 {
		t.Fatalf("expected 1.0 for equal ratings, got %v", got)
	}
}

func TestDemandScore(t *testing.T) {
	if got := DemandScore(TypeOffer, TypeRequest); got != 1.0 {
		t.Fatalf("offer->request: expected 1.0, got %v", got)
	}
	if got := DemandScore(TypeRequest, TypeOffer); got != 1.0 {
		t.Fatalf("request->offer: expected 1.0, got %v", got)
	}
	if got := DemandScore(TypeOffer, TypeOffer); got != 0.5 {
		t.Fatalf("same type: expected 0.5, got %v", got)
	}
}

func TestTagOverlap(t *testing.T) {
	a := []string{"go", "sql"}
	b := []string{"GO", "docker"}

	got := TagOverlap(a, b)
	if got != TagOverlap(b, a) {
		t.Fatalf("not symmetric")
	}
	if !almostEqual(got, 1.0/3.0) {
		t.Fatalf("expected 1/3, got %v", got)
	}

	if got := TagOverlap(a, a); got != 1.0 {
		t.Fatalf("identical sets: expected 1.0, got %v", got)
	}
	if got := TagOverlap(nil, a); got != 0.5 {
		t.Fatalf("missing tags: expected 0.5, got %v", got)
	}
	if got := TagOverlap(a, []string{}); got != 0.5 {
		t.Fatalf("empty tags: expected 0.5, got %v", got)
	}
}

func TestRecencyScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		age  time.Duration
		want float64
	}{
		{3 * 24 * time.Hour, 1.0},
		{10 * 24 * time.Hour, 0.8},
		{45 * 24 * time.Hour, 0.6},
		{120 * 24 * time.Hour, 0.4},
	}
	for _, c := range cases {
		if got := RecencyScore(now.Add(-c.age), now); got != c.want {
			t.Fatalf("age=%v: expected %v, got %v", c.age, c.want, got)
		}
	}
}

func TestSkillQuality(t *testing.T) {
	bare := Skill{}
	if got := SkillQuality(bare); got != 0.5 {
		t.Fatalf("bare skill: expected 0.5, got %v", got)
	}

	mid := Skill{Description: strings.Repeat("x", 60)}
	if got := SkillQuality(mid); !almostEqual(got, 0.7) {
		t.Fatalf("medium description: expected 0.7, got %v", got)
	}

	full := Skill{
		Description: strings.Repeat("x", 120),
		Tags:        []string{"go", "sql", "docker"},
		Duration:    "4 weeks",
	}
	if got := SkillQuality(full); got != 1.0 {
		t.Fatalf("complete skill: expected capped 1.0, got %v", got)
	}
}

func TestMatchScore_PerfectCandidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	source := Skill{
		Type:     TypeRequest,
		Level:    LevelBeginner,
		Location: LocationOnline,
		Tags:     []string{"go"},
	}
	candidate := Skill{
		Type:              TypeOffer,
		Level:             LevelBeginner,
		Location:          LocationOnline,
		Tags:              []string{"go"},
		CreatedAt:         now.Add(-24 * time.Hour),
		OwnerRating:       5.0,
		OwnerTotalRatings: 20,
	}

	if got := MatchScore(source, candidate, now); got != 1.0 {
		t.Fatalf("expected 1.0, got %v", got)
	}
}

func TestMatchScore_InRangeAndRounded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	source := Skill{Type: TypeOffer, Level: LevelAdvanced, Location: LocationInPerson, Tags: []string{"piano"}}
	candidate := Skill{
		Type:              TypeOffer,
		Level:             LevelBeginner,
		Location:          LocationOnline,
		Tags:              []string{"guitar"},
		CreatedAt:         now.Add(-200 * 24 * time.Hour),
		OwnerRating:       2.0,
		OwnerTotalRatings: 4,
	}

	got := MatchScore(source, candidate, now)
	if got < 0 || got > 1 {
		t.Fatalf("score out of range: %v", got)
	}
	if rounded := math.Round(got*100) / 100; rounded != got {
		t.Fatalf("score not rounded to two decimals: %v", got)
	}
}

func TestCompatibilityScore_KnownValue(t *testing.T) {
	offer := Skill{
		Type:              TypeOffer,
		Category:          "Technology",
		Level:             LevelAdvanced,
		Location:          LocationOnline,
		Description:       strings.Repeat("a", 120),
		Tags:              []string{"go", "sql", "docker"},
		Duration:          "6 weeks",
		OwnerRating:       4.8,
		OwnerTotalRatings: 15,
	}
	request := Skill{
		Type:              TypeRequest,
		Category:          "Technology",
		Level:             LevelIntermediate,
		Location:          LocationOnline,
		Description:       strings.Repeat("b", 60),
		Tags:              []string{"go"},
		OwnerRating:       4.6,
		OwnerTotalRatings: 12,
	}

	// level 0.8*0.25 + location 1.0*0.20 + category 1.0*0.15 +
	// balance 0.96*0.20 + quality (1.0+0.8)/2*0.20 = 0.922 -> 0.92
	if got := CompatibilityScore(offer, request); got != 0.92 {
		t.Fatalf("expected 0.92, got %v", got)
	}
}

func TestRecommendationScore_ProfileHit(t *testing.T) {
	prefs := Preferences{
		TopCategories:   []string{"Music"},
		PreferredTypes:  []SkillType{TypeOffer},
		PreferredLevels: []Level{LevelBeginner},
		TopTags:         []string{"guitar"},
	}
	candidate := Skill{
		Type:     TypeOffer,
		Category: "Music",
		Level:    LevelBeginner,
		Tags:     []string{"guitar"},
	}

	// 1.0*0.30 + 1.0*0.25 + 1.0*0.20 + 1.0*0.15 + 0.5*0.10 = 0.95
	if got := RecommendationScore(candidate, prefs); got != 0.95 {
		t.Fatalf("expected 0.95, got %v", got)
	}
}

func TestRecommendationScore_ProfileMiss(t *testing.T) {
	prefs := Preferences{
		TopCategories:   []string{"Music"},
		PreferredTypes:  []SkillType{TypeOffer},
		PreferredLevels: []Level{LevelBeginner},
		TopTags:         []string{"guitar"},
	}
	candidate := Skill{
		Type:     TypeRequest,
		Category: "Cooking",
		Level:    LevelAdvanced,
		Tags:     []string{"guitar", "bass"},
	}

	// 0.3*0.30 + 0.5*0.25 + 0.5*0.20 + 0.5*0.15 + 0.5*0.10 = 0.44
	if got := RecommendationScore(candidate, prefs); got != 0.44 {
		t.Fatalf("expected 0.44, got %v", got)
	}
}
