package handler

import (
	"errors"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/matching"
	"skillswap/internal/pkg/response"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matches usecase.MatchUsecase
}

type createMatchRequest struct {
	OfferSkillID   string `json:"offer_skill_id"`
	RequestSkillID string `json:"request_skill_id"`
	Message        string `json:"message"`
}

type updateMatchStatusRequest struct {
	Status string `json:"status"`
}

func NewMatchHandler(matches usecase.MatchUsecase) *MatchHandler {
	return &MatchHandler{matches: matches}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Patch("/:id/status", h.UpdateStatus)
}

func (h *MatchHandler) Create(c fiber.Ctx) error {
	var req createMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	offerID, err := uuid.Parse(req.OfferSkillID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offer skill id", nil, err)
	}
	requestID, err := uuid.Parse(req.RequestSkillID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request skill id", nil, err)
	}

	row, err := h.matches.CreateMatch(c.Context(), middleware.UserIDFromCtx(c), usecase.CreateMatchInput{
		OfferSkillID:   offerID,
		RequestSkillID: requestID,
		Message:        req.Message,
	})
	if err != nil {
		return mapMatchError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewMatchResponse(row))
}

func (h *MatchHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	row, err := h.matches.GetMatch(c.Context(), middleware.UserIDFromCtx(c), id)
	if err != nil {
		return mapMatchError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(row))
}

func (h *MatchHandler) List(c fiber.Ctx) error {
	filter := repository.MatchListFilter{
		Role:   c.Query("role"),
		Status: matching.Status(c.Query("status")),
	}

	rows, err := h.matches.ListMatches(c.Context(), middleware.UserIDFromCtx(c), filter)
	if err != nil {
		return mapMatchError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchListResponse(rows))
}

func (h *MatchHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match id", nil, err)
	}

	var req updateMatchStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	row, err := h.matches.UpdateMatchStatus(c.Context(), middleware.UserIDFromCtx(c), usecase.UpdateMatchStatusInput{
		MatchID: id,
		Status:  matching.Status(req.Status),
	})
	if err != nil {
		return mapMatchError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(row))
}

func mapMatchError(err error) error {
	var rv *matching.RuleViolation
	if errors.As(err, &rv) {
		status := fiber.StatusBadRequest
		if rv.Kind == matching.ViolationDuplicateMatch {
			status = fiber.StatusConflict
		}
		return middleware.NewAppError(status, rv.Message, map[string]any{"violation": string(rv.Kind)}, rv)
	}

	switch {
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSkillTypeMismatch):
		return middleware.NewAppError(fiber.StatusBadRequest, "Offer and request skills must be of matching types", nil, err)
	case errors.Is(err, usecase.ErrNotMatchParticipant):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a participant of this match", nil, err)
	case errors.Is(err, usecase.ErrInvalidMatchStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid match status", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrOffererDecision):
		return middleware.NewAppError(fiber.StatusForbidden, "Only the offerer can accept or reject", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
