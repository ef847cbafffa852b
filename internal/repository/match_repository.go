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

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchDuplicate = errors.New("match already exists")
)

// MatchRow is a match plus the joined projections list endpoints need.
type MatchRow struct {
	matching.Match

	OfferSkillTitle   string
	RequestSkillTitle string
	OffererUsername   string
	RequesterUsername string
}

type MatchListFilter struct {
	// Role narrows to matches the user sent ("sent") or received
	// ("received"); empty means both sides.
	Role   string
	Status matching.Status
}

type MatchRepository interface {
	CreateMatch(ctx context.Context, m matching.Match) error
	GetMatchByID(ctx context.Context, id uuid.UUID) (MatchRow, error)
	ExistsByTriple(ctx context.Context, offerSkillID, requestSkillID, requesterID uuid.UUID) (bool, error)
	ListMatchesForUser(ctx context.Context, userID uuid.UUID, filter MatchListFilter) ([]MatchRow, error)
	UpdateMatchStatus(ctx context.Context, id uuid.UUID, status matching.Status, acceptedAt, completedAt *time.Time) error
	ListConcludedPairs(ctx context.Context, userID uuid.UUID) ([]matching.MatchedPair, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `
	m.id, m.offer_skill_id, m.request_skill_id, m.requester_id, m.offerer_id,
	m.status, m.compatibility_score, m.message, m.accepted_at, m.completed_at, m.created_at,
	os.title, rs.title, ou.username, ru.username`

const matchFromJoin = `
	 FROM matches m
	 JOIN skills os ON os.id = m.offer_skill_id
	 JOIN skills rs ON rs.id = m.request_skill_id
	 JOIN users ou ON ou.id = m.offerer_id
	 JOIN users ru ON ru.id = m.requester_id`

func scanMatchRow(row database.Row) (MatchRow, error) {
	var m MatchRow
	err := row.Scan(
		&m.ID, &m.OfferSkillID, &m.RequestSkillID, &m.RequesterID, &m.OffererID,
		&m.Status, &m.CompatibilityScore, &m.Message, &m.AcceptedAt, &m.CompletedAt, &m.CreatedAt,
		&m.OfferSkillTitle, &m.RequestSkillTitle, &m.OffererUsername, &m.RequesterUsername,
	)
	return m, err
}

func (r *PostgresMatchRepository) CreateMatch(ctx context.Context, m matching.Match) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, offer_skill_id, request_skill_id, requester_id, offerer_id, status, compatibility_score, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.OfferSkillID, m.RequestSkillID, m.RequesterID, m.OffererID,
		m.Status, m.CompatibilityScore, m.Message, m.CreatedAt,
	)
	if err != nil {
		// The unique index on (offer, request, requester) closes the race
		// left open by the validator's pre-check.
		if isUniqueViolation(err) {
			return ErrMatchDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresMatchRepository) GetMatchByID(ctx context.Context, id uuid.UUID) (MatchRow, error) {
	row := r.db.QueryRow(ctx, `SELECT`+matchColumns+matchFromJoin+` WHERE m.id = $1`, id)

	m, err := scanMatchRow(row)
	if err != nil {
		if isNoRows(err) {
			return MatchRow{}, ErrMatchNotFound
		}
		return MatchRow{}, err
	}
	return m, nil
}

func (r *PostgresMatchRepository) ExistsByTriple(ctx context.Context, offerSkillID, requestSkillID, requesterID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE offer_skill_id = $1 AND request_skill_id = $2 AND requester_id = $3
		 )`,
		offerSkillID, requestSkillID, requesterID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresMatchRepository) ListMatchesForUser(ctx context.Context, userID uuid.UUID, filter MatchListFilter) ([]MatchRow, error) {
	args := []any{userID}
	var cond string
	switch filter.Role {
	case "sent":
		cond = "m.requester_id = $1"
	case "received":
		cond = "m.offerer_id = $1 AND m.requester_id <> $1"
	default:
		cond = "(m.requester_id = $1 OR m.offerer_id = $1)"
	}

	conds := []string{cond}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("m.status = $%d", len(args)))
	}

	query := `SELECT` + matchColumns + matchFromJoin +
		` WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY m.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchRow, 0)
	for rows.Next() {
		m, err := scanMatchRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMatchRepository) UpdateMatchStatus(ctx context.Context, id uuid.UUID, status matching.Status, acceptedAt, completedAt *time.Time) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE matches
		 SET status = $1,
		     accepted_at = COALESCE($2, accepted_at),
		     completed_at = COALESCE($3, completed_at),
		     updated_at = now()
		 WHERE id = $4`,
		status, acceptedAt, completedAt, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// ListConcludedPairs returns the offer/request skill pairs of the user's
// accepted and completed matches, newest first. Preference analysis reads
// from this history.
func (r *PostgresMatchRepository) ListConcludedPairs(ctx context.Context, userID uuid.UUID) ([]matching.MatchedPair, error) {
	rows, err := r.db.Query(ctx,
		`SELECT
			os.id, os.user_id, os.title, os.category, os.type, os.level, os.location, os.tags, os.description, os.duration, os.created_at,
			rs.id, rs.user_id, rs.title, rs.category, rs.type, rs.level, rs.location, rs.tags, rs.description, rs.duration, rs.created_at
		 FROM matches m
		 JOIN skills os ON os.id = m.offer_skill_id
		 JOIN skills rs ON rs.id = m.request_skill_id
		 WHERE (m.requester_id = $1 OR m.offerer_id = $1)
		   AND m.status IN ('accepted', 'completed')
		 ORDER BY m.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matching.MatchedPair, 0)
	for rows.Next() {
		var p matching.MatchedPair
		err := rows.Scan(
			&p.Offer.ID, &p.Offer.OwnerID, &p.Offer.Title, &p.Offer.Category, &p.Offer.Type, &p.Offer.Level,
			&p.Offer.Location, &p.Offer.Tags, &p.Offer.Description, &p.Offer.Duration, &p.Offer.CreatedAt,
			&p.Request.ID, &p.Request.OwnerID, &p.Request.Title, &p.Request.Category, &p.Request.Type, &p.Request.Level,
			&p.Request.Location, &p.Request.Tags, &p.Request.Description, &p.Request.Duration, &p.Request.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
