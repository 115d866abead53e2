package route

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nclexly/nclexly-be/internal/delivery/http/handler"
	"github.com/nclexly/nclexly-be/internal/delivery/http/middleware"
)

func SetupLearningRoute(api *fiber.App, handler handler.LearningHandler, m *middleware.Middleware) {
	responseRouter := api.Group("/responses")
	{
		responseRouter.Post("/", handler.RecordResponse)
	}

	patternRouter := api.Group("/patterns")
	{
		patternRouter.Get("/:user_id", handler.GetPatterns)
		patternRouter.Get("/:user_id/difficulty", handler.GetRecommendedDifficulty)
	}

	contentRouter := api.Group("/content")
	{
		contentRouter.Get("/next", handler.GetNextContent)
	}

	flashcardRouter := api.Group("/flashcards")
	{
		flashcardRouter.Get("/due", handler.GetDueFlashcards)
		flashcardRouter.Post("/:flashcard_id/review", handler.ReviewFlashcard)
	}
}
