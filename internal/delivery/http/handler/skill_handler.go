package handler

import (
	"errors"
	"strconv"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/matching"
	"skillswap/internal/pkg/response"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	skills      usecase.SkillUsecase
	suggestions usecase.SuggestionUsecase
}

type skillRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Level       string   `json:"level"`
	Location    string   `json:"location"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
}

func NewSkillHandler(skills usecase.SkillUsecase, suggestions usecase.SuggestionUsecase) *SkillHandler {
	return &SkillHandler{skills: skills, suggestions: suggestions}
}

// RegisterPublicRoutes mounts the read-only listing endpoints.
func (h *SkillHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/matches", h.SuggestedMatches)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	row, err := h.skills.CreateSkill(c.Context(), middleware.UserIDFromCtx(c), skillInputFromRequest(req))
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewSkillResponse(row))
}

func (h *SkillHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	row, err := h.skills.GetSkill(c.Context(), id)
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(row))
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 10)
	offset := queryInt(c, "offset", 0)

	filter := repository.SkillListFilter{
		Type:     matching.SkillType(c.Query("type")),
		Category: c.Query("category"),
		Level:    matching.Level(c.Query("level")),
		Location: matching.Location(c.Query("location")),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}

	items, total, err := h.skills.ListSkills(c.Context(), filter)
	if err != nil {
		return mapSkillError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillPageResponse{
		Items:  dto.NewSkillListResponse(items),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *SkillHandler) ListMine(c fiber.Ctx) error {
	items, err := h.skills.ListOwnSkills(c.Context(), middleware.UserIDFromCtx(c))
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillListResponse(items))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	row, err := h.skills.UpdateSkill(c.Context(), id, middleware.UserIDFromCtx(c), skillInputFromRequest(req))
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(row))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := h.skills.DeleteSkill(c.Context(), id, middleware.UserIDFromCtx(c)); err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SkillHandler) SuggestedMatches(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	items, err := h.suggestions.SuggestedMatches(c.Context(), id, queryInt(c, "limit", 10))
	if err != nil {
		return mapSkillError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewScoredSkillListResponse(items))
}

func skillInputFromRequest(req skillRequest) usecase.SkillInput {
	return usecase.SkillInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        matching.SkillType(req.Type),
		Level:       matching.Level(req.Level),
		Location:    matching.Location(req.Location),
		Duration:    req.Duration,
		Tags:        req.Tags,
	}
}

func mapSkillError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidSkillInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill input", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func queryInt(c fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
