package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockSkillRepo struct {
	byID       map[uuid.UUID]repository.SkillRow
	candidates []repository.SkillRow
	err        error

	candidateFilter repository.CandidateFilter
}

func (m *mockSkillRepo) CreateSkill(context.Context, repository.NewSkill) (repository.SkillRow, error) {
	return repository.SkillRow{}, m.err
}

func (m *mockSkillRepo) FindActiveByID(_ context.Context, id uuid.UUID) (repository.SkillRow, error) {
	if m.err != nil {
		return repository.SkillRow{}, m.err
	}
	row, ok := m.byID[id]
	if !ok {
		return repository.SkillRow{}, repository.ErrSkillNotFound
	}
	return row, nil
}

func (m *mockSkillRepo) ListSkills(context.Context, repository.SkillListFilter) ([]repository.SkillRow, int64, error) {
	return nil, 0, m.err
}

func (m *mockSkillRepo) ListActiveByUser(_ context.Context, userID uuid.UUID) ([]repository.SkillRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []repository.SkillRow
	for _, r := range m.byID {
		if r.OwnerID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockSkillRepo) UpdateSkill(context.Context, uuid.UUID, uuid.UUID, repository.SkillUpdate) (repository.SkillRow, error) {
	return repository.SkillRow{}, m.err
}

func (m *mockSkillRepo) DeactivateSkill(context.Context, uuid.UUID, uuid.UUID) error {
	return m.err
}

func (m *mockSkillRepo) ListMatchCandidates(context.Context, uuid.UUID, matching.SkillType, int) ([]repository.SkillRow, error) {
	return m.candidates, m.err
}

func (m *mockSkillRepo) ListRecommendationCandidates(_ context.Context, filter repository.CandidateFilter) ([]repository.SkillRow, error) {
	m.candidateFilter = filter
	return m.candidates, m.err
}

type mockMatchRepo struct {
	byID    map[uuid.UUID]repository.MatchRow
	exists  bool
	pairs   []matching.MatchedPair
	err     error
	created *matching.Match
}

func (m *mockMatchRepo) CreateMatch(_ context.Context, mt matching.Match) error {
	if m.err != nil {
		return m.err
	}
	m.created = &mt
	if m.byID == nil {
		m.byID = map[uuid.UUID]repository.MatchRow{}
	}
	m.byID[mt.ID] = repository.MatchRow{Match: mt}
	return nil
}

func (m *mockMatchRepo) GetMatchByID(_ context.Context, id uuid.UUID) (repository.MatchRow, error) {
	row, ok := m.byID[id]
	if !ok {
		return repository.MatchRow{}, repository.ErrMatchNotFound
	}
	return row, nil
}

func (m *mockMatchRepo) ExistsByTriple(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (bool, error) {
	return m.exists, m.err
}

func (m *mockMatchRepo) ListMatchesForUser(context.Context, uuid.UUID, repository.MatchListFilter) ([]repository.MatchRow, error) {
	return nil, m.err
}

func (m *mockMatchRepo) UpdateMatchStatus(_ context.Context, id uuid.UUID, status matching.Status, acceptedAt, completedAt *time.Time) error {
	row, ok := m.byID[id]
	if !ok {
		return repository.ErrMatchNotFound
	}
	row.Status = status
	if acceptedAt != nil {
		row.AcceptedAt = acceptedAt
	}
	if completedAt != nil {
		row.CompletedAt = completedAt
	}
	m.byID[id] = row
	return nil
}

func (m *mockMatchRepo) ListConcludedPairs(context.Context, uuid.UUID) ([]matching.MatchedPair, error) {
	return m.pairs, m.err
}

type recordedNotification struct {
	event  string
	userID uuid.UUID
}

type mockNotifier struct {
	events []recordedNotification
}

func (m *mockNotifier) MatchCreated(userID uuid.UUID, _ repository.MatchRow) {
	m.events = append(m.events, recordedNotification{event: "created", userID: userID})
}

func (m *mockNotifier) MatchUpdated(userID uuid.UUID, _ repository.MatchRow) {
	m.events = append(m.events, recordedNotification{event: "updated", userID: userID})
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func skillFixture(id, owner uuid.UUID, typ matching.SkillType) repository.SkillRow {
	return repository.SkillRow{
		Skill: matching.Skill{
			ID:          id,
			Type:        typ,
			Title:       "Fixture",
			Category:    "Technology",
			Level:       matching.LevelIntermediate,
			Location:    matching.LocationOnline,
			Description: "A reasonably detailed description that crosses the quality threshold for sure.",
			Tags:        []string{"go", "backend"},
			Duration:    "1 hour",
			CreatedAt:   time.Now().UTC(),
			OwnerID:     owner,
		},
	}
}

func TestCreateMatch_Success(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	offerID := uuid.New()
	requestID := uuid.New()

	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{
		offerID:   skillFixture(offerID, offerer, matching.TypeOffer),
		requestID: skillFixture(requestID, requester, matching.TypeRequest),
	}}
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{}}
	notifier := &mockNotifier{}

	uc := NewMatchUsecase(matches, skills, nil, notifier, testLogger())

	row, err := uc.CreateMatch(context.Background(), requester, CreateMatchInput{
		OfferSkillID:   offerID,
		RequestSkillID: requestID,
		Message:        "let's trade",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if row.Status != matching.StatusPending {
		t.Fatalf("expected pending, got %s", row.Status)
	}
	if row.OffererID != offerer || row.RequesterID != requester {
		t.Fatalf("role assignment wrong: offerer=%s requester=%s", row.OffererID, row.RequesterID)
	}
	if row.CompatibilityScore <= 0 || row.CompatibilityScore > 1 {
		t.Fatalf("score out of range: %v", row.CompatibilityScore)
	}
	if len(notifier.events) != 1 || notifier.events[0].event != "created" {
		t.Fatalf("expected one created notification, got %+v", notifier.events)
	}
	if notifier.events[0].userID != offerer {
		t.Fatalf("notification should target the counterparty (offerer)")
	}
}

func TestCreateMatch_SameUserSkills(t *testing.T) {
	owner := uuid.New()
	offerID := uuid.New()
	requestID := uuid.New()

	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{
		offerID:   skillFixture(offerID, owner, matching.TypeOffer),
		requestID: skillFixture(requestID, owner, matching.TypeRequest),
	}}
	uc := NewMatchUsecase(&mockMatchRepo{}, skills, nil, nil, testLogger())

	_, err := uc.CreateMatch(context.Background(), owner, CreateMatchInput{OfferSkillID: offerID, RequestSkillID: requestID})

	var rv *matching.RuleViolation
	if !errors.As(err, &rv) || rv.Kind != matching.ViolationSameUserSkills {
		t.Fatalf("expected same_user_skills violation, got %v", err)
	}
}

func TestCreateMatch_Duplicate(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	offerID := uuid.New()
	requestID := uuid.New()

	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{
		offerID:   skillFixture(offerID, offerer, matching.TypeOffer),
		requestID: skillFixture(requestID, requester, matching.TypeRequest),
	}}
	matches := &mockMatchRepo{exists: true}
	uc := NewMatchUsecase(matches, skills, nil, nil, testLogger())

	_, err := uc.CreateMatch(context.Background(), requester, CreateMatchInput{OfferSkillID: offerID, RequestSkillID: requestID})

	var rv *matching.RuleViolation
	if !errors.As(err, &rv) || rv.Kind != matching.ViolationDuplicateMatch {
		t.Fatalf("expected duplicate_match violation, got %v", err)
	}
}

func TestCreateMatch_TypeMismatch(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	offerID := uuid.New()
	requestID := uuid.New()

	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{
		offerID:   skillFixture(offerID, offerer, matching.TypeOffer),
		requestID: skillFixture(requestID, requester, matching.TypeOffer),
	}}
	uc := NewMatchUsecase(&mockMatchRepo{}, skills, nil, nil, testLogger())

	_, err := uc.CreateMatch(context.Background(), requester, CreateMatchInput{OfferSkillID: offerID, RequestSkillID: requestID})
	if !errors.Is(err, ErrSkillTypeMismatch) {
		t.Fatalf("expected ErrSkillTypeMismatch, got %v", err)
	}
}

func TestCreateMatch_SkillNotFound(t *testing.T) {
	skills := &mockSkillRepo{byID: map[uuid.UUID]repository.SkillRow{}}
	uc := NewMatchUsecase(&mockMatchRepo{}, skills, nil, nil, testLogger())

	_, err := uc.CreateMatch(context.Background(), uuid.New(), CreateMatchInput{OfferSkillID: uuid.New(), RequestSkillID: uuid.New()})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func pendingMatchFixture(offerer, requester uuid.UUID) repository.MatchRow {
	return repository.MatchRow{Match: matching.Match{
		ID:          uuid.New(),
		OffererID:   offerer,
		RequesterID: requester,
		Status:      matching.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}}
}

func TestUpdateMatchStatus_OffererAccepts(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	row := pendingMatchFixture(offerer, requester)
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	notifier := &mockNotifier{}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, notifier, testLogger())

	updated, err := uc.UpdateMatchStatus(context.Background(), offerer, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusAccepted})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != matching.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if updated.AcceptedAt == nil {
		t.Fatalf("expected accepted_at to be stamped")
	}
	if len(notifier.events) != 1 || notifier.events[0].userID != requester {
		t.Fatalf("expected update notification to requester, got %+v", notifier.events)
	}
}

func TestUpdateMatchStatus_RequesterCannotAccept(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	row := pendingMatchFixture(offerer, requester)
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	_, err := uc.UpdateMatchStatus(context.Background(), requester, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusAccepted})
	if !errors.Is(err, ErrOffererDecision) {
		t.Fatalf("expected ErrOffererDecision, got %v", err)
	}
}

func TestUpdateMatchStatus_EitherPartyCancels(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	row := pendingMatchFixture(offerer, requester)
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	updated, err := uc.UpdateMatchStatus(context.Background(), requester, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusCancelled})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != matching.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}
}

func TestUpdateMatchStatus_CompletedStampsTimestamp(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	row := pendingMatchFixture(offerer, requester)
	row.Status = matching.StatusAccepted
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	updated, err := uc.UpdateMatchStatus(context.Background(), requester, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusCompleted})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("expected completed_at to be stamped")
	}
}

func TestUpdateMatchStatus_TerminalStateRejectsTransition(t *testing.T) {
	offerer := uuid.New()
	requester := uuid.New()
	row := pendingMatchFixture(offerer, requester)
	row.Status = matching.StatusRejected
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	_, err := uc.UpdateMatchStatus(context.Background(), offerer, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusAccepted})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateMatchStatus_NonParticipant(t *testing.T) {
	row := pendingMatchFixture(uuid.New(), uuid.New())
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	_, err := uc.UpdateMatchStatus(context.Background(), uuid.New(), UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusCancelled})
	if !errors.Is(err, ErrNotMatchParticipant) {
		t.Fatalf("expected ErrNotMatchParticipant, got %v", err)
	}
}

func TestUpdateMatchStatus_PendingTargetRejected(t *testing.T) {
	row := pendingMatchFixture(uuid.New(), uuid.New())
	matches := &mockMatchRepo{byID: map[uuid.UUID]repository.MatchRow{row.ID: row}}
	uc := NewMatchUsecase(matches, &mockSkillRepo{}, nil, nil, testLogger())

	_, err := uc.UpdateMatchStatus(context.Background(), row.OffererID, UpdateMatchStatusInput{MatchID: row.ID, Status: matching.StatusPending})
	if !errors.Is(err, ErrInvalidMatchStatus) {
		t.Fatalf("expected ErrInvalidMatchStatus, got %v", err)
	}
}
