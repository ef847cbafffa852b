package dto

import "skillswap/internal/usecase"

type PreferencesResponse struct {
	TopCategories   []string `json:"top_categories"`
	PreferredTypes  []string `json:"preferred_types"`
	PreferredLevels []string `json:"preferred_levels"`
	TopTags         []string `json:"top_tags"`
}

type RecommendationResponse struct {
	Preferences PreferencesResponse   `json:"preferences"`
	Items       []ScoredSkillResponse `json:"items"`
}

func NewRecommendationResponse(res usecase.RecommendationResult) RecommendationResponse {
	prefs := PreferencesResponse{
		TopCategories:   emptyIfNil(res.Preferences.TopCategories),
		PreferredTypes:  []string{},
		PreferredLevels: []string{},
		TopTags:         emptyIfNil(res.Preferences.TopTags),
	}
	for _, t := range res.Preferences.PreferredTypes {
		prefs.PreferredTypes = append(prefs.PreferredTypes, string(t))
	}
	for _, l := range res.Preferences.PreferredLevels {
		prefs.PreferredLevels = append(prefs.PreferredLevels, string(l))
	}
	return RecommendationResponse{
		Preferences: prefs,
		Items:       NewScoredSkillListResponse(res.Items),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
