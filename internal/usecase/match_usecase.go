package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrNotMatchParticipant = errors.New("not a participant of this match")
	ErrInvalidMatchStatus  = errors.New("invalid match status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOffererDecision     = errors.New("only the offerer can accept or reject")
	ErrSkillTypeMismatch   = errors.New("offer and request skills are swapped or of the same type")
)

// MatchNotifier pushes match lifecycle events to connected users. A nil
// notifier disables pushes.
type MatchNotifier interface {
	MatchCreated(userID uuid.UUID, m repository.MatchRow)
	MatchUpdated(userID uuid.UUID, m repository.MatchRow)
}

type CreateMatchInput struct {
	OfferSkillID   uuid.UUID
	RequestSkillID uuid.UUID
	Message        string
}

type UpdateMatchStatusInput struct {
	MatchID uuid.UUID
	Status  matching.Status
}

type MatchUsecase interface {
	CreateMatch(ctx context.Context, actingUserID uuid.UUID, in CreateMatchInput) (repository.MatchRow, error)
	GetMatch(ctx context.Context, userID, matchID uuid.UUID) (repository.MatchRow, error)
	ListMatches(ctx context.Context, userID uuid.UUID, filter repository.MatchListFilter) ([]repository.MatchRow, error)
	UpdateMatchStatus(ctx context.Context, userID uuid.UUID, in UpdateMatchStatusInput) (repository.MatchRow, error)
}

type Matches struct {
	matches  repository.MatchRepository
	skills   repository.SkillRepository
	cache    cache.Store
	notifier MatchNotifier
	logger   *log.Logger

	now func() time.Time
}

func NewMatchUsecase(
	matches repository.MatchRepository,
	skills repository.SkillRepository,
	store cache.Store,
	notifier MatchNotifier,
	logger *log.Logger,
) *Matches {
	return &Matches{
		matches:  matches,
		skills:   skills,
		cache:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Matches) CreateMatch(ctx context.Context, actingUserID uuid.UUID, in CreateMatchInput) (repository.MatchRow, error) {
	if actingUserID == uuid.Nil {
		return repository.MatchRow{}, ErrUnauthorized
	}
	if in.OfferSkillID == uuid.Nil || in.RequestSkillID == uuid.Nil {
		return repository.MatchRow{}, ErrSkillNotFound
	}

	offer, err := u.loadSkill(ctx, in.OfferSkillID)
	if err != nil {
		return repository.MatchRow{}, err
	}
	request, err := u.loadSkill(ctx, in.RequestSkillID)
	if err != nil {
		return repository.MatchRow{}, err
	}

	if offer.Type != matching.TypeOffer || request.Type != matching.TypeRequest {
		return repository.MatchRow{}, ErrSkillTypeMismatch
	}

	result, err := matching.ValidateMatch(offer.Skill, request.Skill, actingUserID,
		func(offerSkillID, requestSkillID, requesterID uuid.UUID) (bool, error) {
			return u.matches.ExistsByTriple(ctx, offerSkillID, requestSkillID, requesterID)
		})
	if err != nil {
		var rv *matching.RuleViolation
		if errors.As(err, &rv) {
			return repository.MatchRow{}, rv
		}
		u.logger.Printf("MatchUsecase | validation lookup failed: err=%v", err)
		return repository.MatchRow{}, ErrInternal
	}

	if result.LowRatedParty {
		u.logger.Printf("MatchUsecase | low-rated party in match: offer=%s request=%s", offer.ID, request.ID)
	}

	m := matching.Match{
		ID:                 uuid.New(),
		OfferSkillID:       offer.ID,
		RequestSkillID:     request.ID,
		RequesterID:        result.RequesterID,
		OffererID:          result.OffererID,
		Status:             matching.StatusPending,
		CompatibilityScore: result.CompatibilityScore,
		Message:            in.Message,
		CreatedAt:          u.now().UTC(),
	}

	if err := u.matches.CreateMatch(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMatchDuplicate) {
			return repository.MatchRow{}, &matching.RuleViolation{
				Kind:    matching.ViolationDuplicateMatch,
				Message: "Match already exists",
			}
		}
		u.logger.Printf("MatchUsecase | create failed: err=%v", err)
		return repository.MatchRow{}, ErrInternal
	}

	row, err := u.matches.GetMatchByID(ctx, m.ID)
	if err != nil {
		return repository.MatchRow{}, ErrInternal
	}

	u.invalidateRecommendations(ctx, row.OffererID, row.RequesterID)
	if u.notifier != nil {
		u.notifier.MatchCreated(counterparty(row.Match, actingUserID), row)
	}
	return row, nil
}

func (u *Matches) GetMatch(ctx context.Context, userID, matchID uuid.UUID) (repository.MatchRow, error) {
	if userID == uuid.Nil {
		return repository.MatchRow{}, ErrUnauthorized
	}
	row, err := u.matches.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return repository.MatchRow{}, ErrMatchNotFound
		}
		return repository.MatchRow{}, ErrInternal
	}
	if !row.Participant(userID) {
		return repository.MatchRow{}, ErrNotMatchParticipant
	}
	return row, nil
}

func (u *Matches) ListMatches(ctx context.Context, userID uuid.UUID, filter repository.MatchListFilter) ([]repository.MatchRow, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidMatchStatus
	}
	rows, err := u.matches.ListMatchesForUser(ctx, userID, filter)
	if err != nil {
		u.logger.Printf("MatchUsecase | list failed: user=%s err=%v", userID, err)
		return nil, ErrInternal
	}
	return rows, nil
}

func (u *Matches) UpdateMatchStatus(ctx context.Context, userID uuid.UUID, in UpdateMatchStatusInput) (repository.MatchRow, error) {
	if userID == uuid.Nil {
		return repository.MatchRow{}, ErrUnauthorized
	}
	if !in.Status.Valid() || in.Status == matching.StatusPending {
		return repository.MatchRow{}, ErrInvalidMatchStatus
	}

	row, err := u.matches.GetMatchByID(ctx, in.MatchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return repository.MatchRow{}, ErrMatchNotFound
		}
		return repository.MatchRow{}, ErrInternal
	}
	if !row.Participant(userID) {
		return repository.MatchRow{}, ErrNotMatchParticipant
	}

	if !matching.CanTransition(row.Status, in.Status) {
		return repository.MatchRow{}, ErrInvalidTransition
	}
	if matching.OffererDecides(in.Status) && userID != row.OffererID {
		return repository.MatchRow{}, ErrOffererDecision
	}

	var acceptedAt, completedAt *time.Time
	now := u.now().UTC()
	switch in.Status {
	case matching.StatusAccepted:
		acceptedAt = &now
	case matching.StatusCompleted:
		completedAt = &now
	}

	if err := u.matches.UpdateMatchStatus(ctx, in.MatchID, in.Status, acceptedAt, completedAt); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return repository.MatchRow{}, ErrMatchNotFound
		}
		u.logger.Printf("MatchUsecase | status update failed: match=%s err=%v", in.MatchID, err)
		return repository.MatchRow{}, ErrInternal
	}

	updated, err := u.matches.GetMatchByID(ctx, in.MatchID)
	if err != nil {
		return repository.MatchRow{}, ErrInternal
	}

	// Concluded matches feed preference analysis, so both parties'
	// cached recommendations go stale here.
	u.invalidateRecommendations(ctx, updated.OffererID, updated.RequesterID)
	if u.notifier != nil {
		u.notifier.MatchUpdated(counterparty(updated.Match, userID), updated)
	}
	return updated, nil
}

func (u *Matches) loadSkill(ctx context.Context, id uuid.UUID) (repository.SkillRow, error) {
	row, err := u.skills.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.SkillRow{}, ErrSkillNotFound
		}
		return repository.SkillRow{}, ErrInternal
	}
	return row, nil
}

func (u *Matches) invalidateRecommendations(ctx context.Context, users ...uuid.UUID) {
	if u.cache == nil {
		return
	}
	for _, id := range users {
		_ = u.cache.DeleteByPattern(ctx, "recommendations:user:"+id.String()+":*")
	}
}

func counterparty(m matching.Match, userID uuid.UUID) uuid.UUID {
	if m.OffererID == userID {
		return m.RequesterID
	}
	return m.OffererID
}
