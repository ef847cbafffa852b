package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/database"
	"skillswap/internal/domain/matching"

	"github.com/google/uuid"
)

var ErrSkillNotFound = errors.New("skill not found")

// SkillRow is a hydrated skill record: the posting plus its owner's
// public projection, ready to hand to the matching core.
type SkillRow struct {
	matching.Skill

	IsActive  bool
	UpdatedAt time.Time

	OwnerUsername  string
	OwnerFirstName string
	OwnerLastName  string
}

type NewSkill struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Category    string
	Type        matching.SkillType
	Level       matching.Level
	Location    matching.Location
	Duration    string
	Tags        []string
}

type SkillUpdate struct {
	Title       string
	Description string
	Category    string
	Type        matching.SkillType
	Level       matching.Level
	Location    matching.Location
	Duration    string
	Tags        []string
}

type SkillListFilter struct {
	Type     matching.SkillType
	Category string
	Level    matching.Level
	Location matching.Location
	Search   string
	Limit    int
	Offset   int
}

// CandidateFilter mirrors the recommendation pool query: active skills
// from other users, narrowed to the derived preference profile.
type CandidateFilter struct {
	ExcludeUserID uuid.UUID
	Categories    []string
	Types         []matching.SkillType
	Levels        []matching.Level
	Limit         int
}

type SkillRepository interface {
	CreateSkill(ctx context.Context, in NewSkill) (SkillRow, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (SkillRow, error)
	ListSkills(ctx context.Context, filter SkillListFilter) ([]SkillRow, int64, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]SkillRow, error)
	UpdateSkill(ctx context.Context, id, userID uuid.UUID, upd SkillUpdate) (SkillRow, error)
	DeactivateSkill(ctx context.Context, id, userID uuid.UUID) error
	ListMatchCandidates(ctx context.Context, excludeUserID uuid.UUID, typ matching.SkillType, limit int) ([]SkillRow, error)
	ListRecommendationCandidates(ctx context.Context, filter CandidateFilter) ([]SkillRow, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `
	s.id, s.user_id, s.title, s.description, s.category, s.type, s.level, s.location,
	s.duration, s.tags, s.is_active, s.created_at, s.updated_at,
	u.username, u.first_name, u.last_name, u.rating, u.total_ratings`

const skillFromJoin = ` FROM skills s JOIN users u ON u.id = s.user_id`

func scanSkillRow(row database.Row) (SkillRow, error) {
	var s SkillRow
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Category, &s.Type, &s.Level, &s.Location,
		&s.Duration, &s.Tags, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.OwnerUsername, &s.OwnerFirstName, &s.OwnerLastName, &s.OwnerRating, &s.OwnerTotalRatings,
	)
	return s, err
}

func collectSkillRows(rows database.Rows) ([]SkillRow, error) {
	defer rows.Close()

	out := make([]SkillRow, 0)
	for rows.Next() {
		s, err := scanSkillRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, in NewSkill) (SkillRow, error) {
	id := uuid.New()
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, user_id, title, description, category, type, level, location, duration, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, in.UserID, in.Title, in.Description, in.Category, in.Type, in.Level, in.Location, in.Duration, tags,
	)
	if err != nil {
		return SkillRow{}, err
	}

	return r.FindActiveByID(ctx, id)
}

func (r *PostgresSkillRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (SkillRow, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+skillColumns+skillFromJoin+` WHERE s.id = $1 AND s.is_active = true`, id)

	s, err := scanSkillRow(row)
	if err != nil {
		if isNoRows(err) {
			return SkillRow{}, ErrSkillNotFound
		}
		return SkillRow{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context, filter SkillListFilter) ([]SkillRow, int64, error) {
	conds := []string{"s.is_active = true"}
	args := []any{}

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Type != "" {
		add("s.type = $%d", filter.Type)
	}
	if filter.Category != "" {
		add("s.category = $%d", filter.Category)
	}
	if filter.Level != "" {
		add("s.level = $%d", filter.Level)
	}
	if filter.Location != "" {
		add("s.location = $%d", filter.Location)
	}
	if strings.TrimSpace(filter.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(s.title ILIKE $%d OR s.description ILIKE $%d OR s.category ILIKE $%d)", n, n, n))
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*)`+skillFromJoin+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)
	query := `SELECT` + skillColumns + skillFromJoin + where +
		fmt.Sprintf(` ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectSkillRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresSkillRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]SkillRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+skillColumns+skillFromJoin+` WHERE s.user_id = $1 AND s.is_active = true ORDER BY s.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectSkillRows(rows)
}

func (r *PostgresSkillRepository) UpdateSkill(ctx context.Context, id, userID uuid.UUID, upd SkillUpdate) (SkillRow, error) {
	tags := upd.Tags
	if tags == nil {
		tags = []string{}
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE skills
		 SET title = $1, description = $2, category = $3, type = $4, level = $5, location = $6,
		     duration = $7, tags = $8, updated_at = now()
		 WHERE id = $9 AND user_id = $10 AND is_active = true`,
		upd.Title, upd.Description, upd.Category, upd.Type, upd.Level, upd.Location,
		upd.Duration, tags, id, userID,
	)
	if err != nil {
		return SkillRow{}, err
	}
	if affected == 0 {
		return SkillRow{}, ErrSkillNotFound
	}

	return r.FindActiveByID(ctx, id)
}

func (r *PostgresSkillRepository) DeactivateSkill(ctx context.Context, id, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE skills SET is_active = false, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND is_active = true`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) ListMatchCandidates(ctx context.Context, excludeUserID uuid.UUID, typ matching.SkillType, limit int) ([]SkillRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT`+skillColumns+skillFromJoin+`
		 WHERE s.is_active = true AND s.user_id <> $1 AND s.type = $2
		 ORDER BY s.created_at DESC LIMIT $3`,
		excludeUserID, typ, limit)
	if err != nil {
		return nil, err
	}
	return collectSkillRows(rows)
}

func (r *PostgresSkillRepository) ListRecommendationCandidates(ctx context.Context, filter CandidateFilter) ([]SkillRow, error) {
	if len(filter.Categories) == 0 || len(filter.Types) == 0 || len(filter.Levels) == 0 {
		return []SkillRow{}, nil
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	categories := filter.Categories
	types := make([]string, 0, len(filter.Types))
	for _, t := range filter.Types {
		types = append(types, string(t))
	}
	levels := make([]string, 0, len(filter.Levels))
	for _, l := range filter.Levels {
		levels = append(levels, string(l))
	}

	rows, err := r.db.Query(ctx,
		`SELECT`+skillColumns+skillFromJoin+`
		 WHERE s.is_active = true
		   AND s.user_id <> $1
		   AND s.category = ANY($2)
		   AND s.type = ANY($3)
		   AND s.level = ANY($4)
		 ORDER BY s.created_at DESC LIMIT $5`,
		filter.ExcludeUserID, categories, types, levels, limit)
	if err != nil {
		return nil, err
	}
	return collectSkillRows(rows)
}
