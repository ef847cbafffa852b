package matching

import (
	"math"
	"strings"
	"time"
)

// Weighted-sum scoring over independent sub-metrics, each in [0,1].
// Only the final sums are rounded, to two decimals.

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MatchScore rates how well a candidate skill fits a source skill for
// suggested-match listings. The owner rating and recency sub-metrics
// look at the candidate side only.
func MatchScore(source, candidate Skill, now time.Time) float64 {
	score := LevelCompatibility(source.Level, candidate.Level) * 0.25
	score += LocationCompatibility(source.Location, candidate.Location) * 0.20
	score += RatingScore(candidate.OwnerRating, candidate.OwnerTotalRatings) * 0.25
	score += DemandScore(source.Type, candidate.Type) * 0.15
	score += TagOverlap(source.Tags, candidate.Tags) * 0.10
	score += RecencyScore(candidate.CreatedAt, now) * 0.05
	return round2(score)
}

// CompatibilityScore is the match-creation variant persisted on the
// match record.
func CompatibilityScore(offer, request Skill) float64 {
	score := LevelCompatibility(offer.Level, request.Level) * 0.25
	score += LocationCompatibility(offer.Location, request.Location) * 0.20
	score += CategoryScore(offer.Category, request.Category) * 0.15
	score += RatingBalance(offer.OwnerRating, request.OwnerRating) * 0.20
	score += (SkillQuality(offer) + SkillQuality(request)) / 2 * 0.20
	return round2(score)
}

// RecommendationScore rates a candidate skill against a derived
// preference profile.
func RecommendationScore(candidate Skill, prefs Preferences) float64 {
	categoryScore := 0.3
	if containsString(prefs.TopCategories, candidate.Category) {
		categoryScore = 1.0
	}
	typeScore := 0.5
	if containsType(prefs.PreferredTypes, candidate.Type) {
		typeScore = 1.0
	}
	levelScore := 0.5
	if containsLevel(prefs.PreferredLevels, candidate.Level) {
		levelScore = 1.0
	}

	score := categoryScore * 0.30
	score += typeScore * 0.25
	score += levelScore * 0.20
	score += TagOverlap(candidate.Tags, prefs.TopTags) * 0.15
	score += RatingScore(candidate.OwnerRating, candidate.OwnerTotalRatings) * 0.10
	return round2(score)
}

func LevelCompatibility(a, b Level) float64 {
	diff := a.ordinal() - b.ordinal()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return 1.0
	case 1:
		return 0.8
	}
	return 0.3
}

func LocationCompatibility(a, b Location) float64 {
	if a == b {
		return 1.0
	}
	if a == LocationBoth || b == LocationBoth {
		return 0.8
	}
	return 0.2
}

// RatingScore blends the normalized average rating with a confidence
// factor that grows with the number of ratings. Users with fewer than
// three ratings get a neutral default.
func RatingScore(rating float64, totalRatings int) float64 {
	if totalRatings < 3 {
		return 0.5
	}
	normalized := rating / 5
	confidence := math.Min(float64(totalRatings)/10, 1)
	return normalized*0.7 + confidence*0.3
}

func RatingBalance(a, b float64) float64 {
	diff := math.Abs(a - b)
	return math.Max(0, 1-diff/5)
}

func DemandScore(a, b SkillType) float64 {
	if a == TypeRequest && b == TypeOffer {
		return 1.0
	}
	if a == TypeOffer && b == TypeRequest {
		return 1.0
	}
	return 0.5
}

func CategoryScore(a, b string) float64 {
	if a == b {
		return 1.0
	}
	return 0.5
}

// TagOverlap is the case-insensitive Jaccard index of the two tag
// sets. Either side missing tags yields the neutral default.
func TagOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.5
	}

	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[strings.ToLower(t)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[strings.ToLower(t)] = struct{}{}
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func RecencyScore(createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	switch {
	case days <= 7:
		return 1.0
	case days <= 30:
		return 0.8
	case days <= 90:
		return 0.6
	}
	return 0.4
}

// SkillQuality rewards complete postings: a substantial description,
// tags, and a stated duration.
func SkillQuality(s Skill) float64 {
	score := 0.5

	if len(s.Description) > 50 {
		score += 0.2
	}
	if len(s.Description) > 100 {
		score += 0.1
	}
	if len(s.Tags) > 0 {
		score += 0.1
	}
	if len(s.Tags) > 2 {
		score += 0.1
	}
	if s.Duration != "" {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

func containsString(list []string, v string) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}

func containsType(list []SkillType, v SkillType) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}

func containsLevel(list []Level, v Level) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}
