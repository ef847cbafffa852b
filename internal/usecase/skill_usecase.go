package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skillswap/internal/domain/matching"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound     = errors.New("skill not found")
	ErrInvalidSkillInput = errors.New("invalid skill input")
)

type SkillInput struct {
	Title       string
	Description string
	Category    string
	Type        matching.SkillType
	Level       matching.Level
	Location    matching.Location
	Duration    string
	Tags        []string
}

type SkillUsecase interface {
	CreateSkill(ctx context.Context, userID uuid.UUID, in SkillInput) (repository.SkillRow, error)
	GetSkill(ctx context.Context, id uuid.UUID) (repository.SkillRow, error)
	ListSkills(ctx context.Context, filter repository.SkillListFilter) ([]repository.SkillRow, int64, error)
	ListOwnSkills(ctx context.Context, userID uuid.UUID) ([]repository.SkillRow, error)
	UpdateSkill(ctx context.Context, id, userID uuid.UUID, in SkillInput) (repository.SkillRow, error)
	DeleteSkill(ctx context.Context, id, userID uuid.UUID) error
}

type Skills struct {
	skills repository.SkillRepository
	cache  cache.Store
	logger *log.Logger
}

func NewSkillUsecase(skills repository.SkillRepository, store cache.Store, logger *log.Logger) *Skills {
	return &Skills{skills: skills, cache: store, logger: logger}
}

func (u *Skills) CreateSkill(ctx context.Context, userID uuid.UUID, in SkillInput) (repository.SkillRow, error) {
	if userID == uuid.Nil {
		return repository.SkillRow{}, ErrUnauthorized
	}
	in, err := normalizeSkillInput(in)
	if err != nil {
		return repository.SkillRow{}, err
	}

	row, err := u.skills.CreateSkill(ctx, repository.NewSkill{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Level:       in.Level,
		Location:    in.Location,
		Duration:    in.Duration,
		Tags:        in.Tags,
	})
	if err != nil {
		u.logger.Printf("SkillUsecase | create failed: user=%s err=%v", userID, err)
		return repository.SkillRow{}, ErrInternal
	}

	u.invalidateDerived(ctx)
	return row, nil
}

func (u *Skills) GetSkill(ctx context.Context, id uuid.UUID) (repository.SkillRow, error) {
	if id == uuid.Nil {
		return repository.SkillRow{}, ErrSkillNotFound
	}
	row, err := u.skills.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.SkillRow{}, ErrSkillNotFound
		}
		return repository.SkillRow{}, ErrInternal
	}
	return row, nil
}

func (u *Skills) ListSkills(ctx context.Context, filter repository.SkillListFilter) ([]repository.SkillRow, int64, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, ErrInvalidSkillInput
	}
	if filter.Level != "" && !filter.Level.Valid() {
		return nil, 0, ErrInvalidSkillInput
	}
	if filter.Location != "" && !filter.Location.Valid() {
		return nil, 0, ErrInvalidSkillInput
	}

	items, total, err := u.skills.ListSkills(ctx, filter)
	if err != nil {
		u.logger.Printf("SkillUsecase | list failed: err=%v", err)
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Skills) ListOwnSkills(ctx context.Context, userID uuid.UUID) ([]repository.SkillRow, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.skills.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skills) UpdateSkill(ctx context.Context, id, userID uuid.UUID, in SkillInput) (repository.SkillRow, error) {
	if userID == uuid.Nil {
		return repository.SkillRow{}, ErrUnauthorized
	}
	in, err := normalizeSkillInput(in)
	if err != nil {
		return repository.SkillRow{}, err
	}

	row, err := u.skills.UpdateSkill(ctx, id, userID, repository.SkillUpdate{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Type:        in.Type,
		Level:       in.Level,
		Location:    in.Location,
		Duration:    in.Duration,
		Tags:        in.Tags,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return repository.SkillRow{}, ErrSkillNotFound
		}
		u.logger.Printf("SkillUsecase | update failed: skill=%s err=%v", id, err)
		return repository.SkillRow{}, ErrInternal
	}

	u.invalidateDerived(ctx)
	return row, nil
}

func (u *Skills) DeleteSkill(ctx context.Context, id, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.skills.DeactivateSkill(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		u.logger.Printf("SkillUsecase | delete failed: skill=%s err=%v", id, err)
		return ErrInternal
	}

	u.invalidateDerived(ctx)
	return nil
}

// invalidateDerived drops cached suggestion and recommendation payloads;
// any skill write can change both. Cache failures are non-fatal.
func (u *Skills) invalidateDerived(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, "skills:*:matches:*")
	_ = u.cache.DeleteByPattern(ctx, "recommendations:user:*")
}

func normalizeSkillInput(in SkillInput) (SkillInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Duration = strings.TrimSpace(in.Duration)

	if in.Title == "" || in.Category == "" {
		return SkillInput{}, ErrInvalidSkillInput
	}
	if in.Level == "" {
		in.Level = matching.LevelBeginner
	}
	if in.Location == "" {
		in.Location = matching.LocationOnline
	}
	if !in.Type.Valid() || !in.Level.Valid() || !in.Location.Valid() {
		return SkillInput{}, ErrInvalidSkillInput
	}

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]struct{}, len(in.Tags))
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, t)
	}
	in.Tags = tags

	return in, nil
}
