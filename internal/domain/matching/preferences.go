package matching

import "sort"

// Preferences is a user's derived affinity profile. It is ephemeral:
// recomputed per request, never persisted.
type Preferences struct {
	TopCategories   []string
	PreferredTypes  []SkillType
	PreferredLevels []Level
	TopTags         []string
}

// tally counts weighted occurrences while remembering first-seen
// order, so ranking ties resolve by insertion order.
type tally struct {
	order  []string
	counts map[string]float64
}

func newTally(seed ...string) *tally {
	t := &tally{counts: make(map[string]float64)}
	for _, k := range seed {
		t.order = append(t.order, k)
		t.counts[k] = 0
	}
	return t
}

func (t *tally) add(key string, weight float64) {
	if key == "" {
		return
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += weight
}

func (t *tally) top(n int) []string {
	ranked := make([]string, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.counts[ranked[i]] > t.counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// AnalyzePreferences derives a preference profile from a user's own
// skills plus their accepted/completed match history. Own skills count
// full weight; each side of a concluded match counts half.
func AnalyzePreferences(ownSkills []Skill, history []MatchedPair) Preferences {
	categories := newTally()
	levels := newTally(string(LevelBeginner), string(LevelIntermediate), string(LevelAdvanced))
	tags := newTally()

	var offerCount, requestCount int

	for _, s := range ownSkills {
		categories.add(s.Category, 1)
		levels.add(string(s.Level), 1)
		for _, tag := range s.Tags {
			tags.add(tag, 1)
		}
		switch s.Type {
		case TypeOffer:
			offerCount++
		case TypeRequest:
			requestCount++
		}
	}

	for _, pair := range history {
		categories.add(pair.Offer.Category, 0.5)
		categories.add(pair.Request.Category, 0.5)
		levels.add(string(pair.Offer.Level), 0.5)
		levels.add(string(pair.Request.Level), 0.5)
	}

	// Recommend the opposite of what the user mostly posts: heavy
	// offerers get requests to fulfil, and vice versa.
	preferredType := TypeOffer
	if offerCount > requestCount {
		preferredType = TypeRequest
	}

	topLevels := make([]Level, 0, 2)
	for _, l := range levels.top(2) {
		topLevels = append(topLevels, Level(l))
	}

	return Preferences{
		TopCategories:   categories.top(5),
		PreferredTypes:  []SkillType{preferredType},
		PreferredLevels: topLevels,
		TopTags:         tags.top(10),
	}
}

// RankedSkill pairs a candidate with its recommendation score.
type RankedSkill struct {
	Skill Skill
	Score float64
}

// RankCandidates scores a pre-filtered candidate pool against the
// preference profile and returns the top entries in descending score
// order. Ties keep the pool's original order.
func RankCandidates(pool []Skill, prefs Preferences, limit int) []RankedSkill {
	if limit <= 0 {
		limit = 10
	}

	ranked := make([]RankedSkill, 0, len(pool))
	for _, s := range pool {
		ranked = append(ranked, RankedSkill{Skill: s, Score: RecommendationScore(s, prefs)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
