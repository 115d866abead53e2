package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nclexly/nclexly-be/internal/delivery/http/domain"
	"github.com/nclexly/nclexly-be/internal/delivery/http/entity"
	"github.com/nclexly/nclexly-be/internal/delivery/http/usecase"
	"github.com/nclexly/nclexly-be/internal/pkg/response"
	"github.com/nclexly/nclexly-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
)

type (
	LearningHandler interface {
		RecordResponse(ctx *fiber.Ctx) error
		GetPatterns(ctx *fiber.Ctx) error
		GetRecommendedDifficulty(ctx *fiber.Ctx) error
		GetNextContent(ctx *fiber.Ctx) error
		ReviewFlashcard(ctx *fiber.Ctx) error
		GetDueFlashcards(ctx *fiber.Ctx) error
	}

	learningHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.LearningEngineUsecase
	}
)

func NewLearningHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.LearningEngineUsecase) LearningHandler {
	return &learningHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /responses
func (h *learningHandler) RecordResponse(ctx *fiber.Ctx) error {
	var req entity.RecordResponseRequest

	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.LEARNING_RECORD_RESPONSE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	result, err := h.usecase.RecordResponse(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.LEARNING_RECORD_RESPONSE_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LEARNING_RECORD_RESPONSE_SUCCESS, result, nil).Send(ctx)
}

// GET /patterns/:user_id
func (h *learningHandler) GetPatterns(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.LEARNING_GET_PATTERNS_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	snapshot, err := h.usecase.Analyze(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.LEARNING_GET_PATTERNS_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LEARNING_GET_PATTERNS_SUCCESS, snapshot, nil).Send(ctx)
}

// GET /patterns/:user_id/difficulty?category=Pharmacology
func (h *learningHandler) GetRecommendedDifficulty(ctx *fiber.Ctx) error {
	userID := ctx.Params("user_id")
	if userID == "" {
		return response.NewFailed(domain.LEARNING_GET_DIFFICULTY_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	category := strings.TrimSpace(ctx.Query("category"))
	if category == "" {
		return response.NewFailed(domain.LEARNING_GET_DIFFICULTY_FAILED, fiber.NewError(fiber.StatusBadRequest, "category is required"), h.logger).Send(ctx)
	}

	result, err := h.usecase.RecommendedDifficulty(ctx.UserContext(), userID, category)
	if err != nil {
		return response.NewFailed(domain.LEARNING_GET_DIFFICULTY_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LEARNING_GET_DIFFICULTY_SUCCESS, result, nil).Send(ctx)
}

// GET /content/next?user_id=u1&topic=Pharmacology
func (h *learningHandler) GetNextContent(ctx *fiber.Ctx) error {
	userID := strings.TrimSpace(ctx.Query("user_id"))
	if userID == "" {
		return response.NewFailed(domain.LEARNING_SELECT_CONTENT_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	topic := strings.TrimSpace(ctx.Query("topic"))

	card, err := h.usecase.SelectNextContent(ctx.UserContext(), userID, topic)
	if err != nil {
		if errors.Is(err, usecase.ErrNoContent) {
			return response.NewFailed(domain.LEARNING_SELECT_CONTENT_FAILED, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
		}
		return response.NewFailed(domain.LEARNING_SELECT_CONTENT_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LEARNING_SELECT_CONTENT_SUCCESS, card, nil).Send(ctx)
}

// POST /flashcards/:flashcard_id/review
func (h *learningHandler) ReviewFlashcard(ctx *fiber.Ctx) error {
	flashcardID := ctx.Params("flashcard_id")
	if flashcardID == "" {
		return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusBadRequest, "flashcard_id is required"), h.logger).Send(ctx)
	}

	var req entity.ReviewFlashcardRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
	}

	view, err := h.usecase.ReviewFlashcard(ctx.UserContext(), flashcardID, *req.Quality)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFlashcardNotFound):
			return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusNotFound, err.Error()), h.logger).Send(ctx)
		case errors.Is(err, usecase.ErrInvalidQuality):
			return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()), h.logger).Send(ctx)
		case errors.Is(err, usecase.ErrStaleSchedule):
			return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusConflict, err.Error()), h.logger).Send(ctx)
		default:
			return response.NewFailed(domain.LEARNING_REVIEW_FLASHCARD_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
		}
	}

	return response.NewSuccess(domain.LEARNING_REVIEW_FLASHCARD_SUCCESS, view, nil).Send(ctx)
}

// GET /flashcards/due?user_id=u1
func (h *learningHandler) GetDueFlashcards(ctx *fiber.Ctx) error {
	userID := strings.TrimSpace(ctx.Query("user_id"))
	if userID == "" {
		return response.NewFailed(domain.LEARNING_GET_DUE_FLASHCARDS_FAILED, fiber.NewError(fiber.StatusBadRequest, "user_id is required"), h.logger).Send(ctx)
	}

	views, err := h.usecase.DueFlashcards(ctx.UserContext(), userID)
	if err != nil {
		return response.NewFailed(domain.LEARNING_GET_DUE_FLASHCARDS_FAILED, fiber.NewError(fiber.StatusInternalServerError, err.Error()), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.LEARNING_GET_DUE_FLASHCARDS_SUCCESS, views, nil).Send(ctx)
}
