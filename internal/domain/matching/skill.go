package matching

import (
	"time"

	"github.com/google/uuid"
)

type SkillType string

const (
	TypeOffer   SkillType = "offer"
	TypeRequest SkillType = "request"
)

func (t SkillType) Valid() bool {
	return t == TypeOffer || t == TypeRequest
}

// Opposite returns the counterpart type: offers pair with requests.
func (t SkillType) Opposite() SkillType {
	if t == TypeOffer {
		return TypeRequest
	}
	return TypeOffer
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// ordinal maps the three-tier scale to 1..3. Unknown levels map to 0.
func (l Level) ordinal() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	}
	return 0
}

type Location string

const (
	LocationOnline   Location = "online"
	LocationInPerson Location = "in-person"
	LocationBoth     Location = "both"
)

func (l Location) Valid() bool {
	return l == LocationOnline || l == LocationInPerson || l == LocationBoth
}

// Skill is a fully hydrated skill record: the posting itself plus the
// owning user's rating projection. The matching package only reads it.
type Skill struct {
	ID          uuid.UUID
	Type        SkillType
	Title       string
	Category    string
	Level       Level
	Location    Location
	Tags        []string
	Description string
	Duration    string
	CreatedAt   time.Time

	OwnerID           uuid.UUID
	OwnerRating       float64
	OwnerTotalRatings int
}

// MatchedPair carries both sides of a concluded match, used when
// deriving a user's preference profile from their history.
type MatchedPair struct {
	Offer   Skill
	Request Skill
}
