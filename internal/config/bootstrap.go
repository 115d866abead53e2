package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nclexly/nclexly-be/internal/delivery/http/handler"
	"github.com/nclexly/nclexly-be/internal/delivery/http/middleware"
	"github.com/nclexly/nclexly-be/internal/delivery/http/repository"
	"github.com/nclexly/nclexly-be/internal/delivery/http/route"
	"github.com/nclexly/nclexly-be/internal/delivery/http/usecase"
	"github.com/nclexly/nclexly-be/internal/job"
	"github.com/nclexly/nclexly-be/internal/pkg/event"
	"github.com/nclexly/nclexly-be/internal/pkg/llm"
	"github.com/nclexly/nclexly-be/internal/pkg/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type BootstrapConfig struct {
	Api       *fiber.App
	Config    *viper.Viper
	DB        *gorm.DB
	Log       *logrus.Logger
	Validator *validate.Validator
}

// Bootstrap wires the engine together and returns the background
// refresher so main can stop it on shutdown.
func Bootstrap(config *BootstrapConfig) *job.SnapshotRefresher {

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:    config.Log,
		Config: config.Config,
	})

	apiKey := ""
	model := ""
	baseURL := ""
	if config.Config != nil {
		apiKey = config.Config.GetString("llm.gemini.api_key")
		model = config.Config.GetString("llm.gemini.model")
		baseURL = config.Config.GetString("llm.gemini.base_url")
	}

	var gemini *llm.GeminiClient
	if apiKey != "" {
		gemini = llm.NewGeminiClient(apiKey, model, baseURL)
	}

	var publisher *event.Publisher
	if amqpURL := config.Config.GetString("amqp.url"); amqpURL != "" {
		exchange := config.Config.GetString("amqp.exchange")
		if exchange == "" {
			exchange = "learning.events"
		}
		p, err := event.NewPublisher(amqpURL, exchange, config.Log)
		if err != nil {
			config.Log.Warnf("event publisher disabled: %v", err)
		} else {
			publisher = p
		}
	}

	learningRepo := repository.NewLearningRepository(config.DB)
	contentRepo := repository.NewContentRepository(config.DB)
	flashcardRepo := repository.NewFlashcardRepository(config.DB)

	learningUsecase := usecase.NewLearningEngineUsecase(usecase.LearningEngineConfig{
		DB:         config.DB,
		Log:        config.Log,
		Config:     config.Config,
		Learning:   learningRepo,
		Content:    contentRepo,
		Flashcards: flashcardRepo,
		Gemini:     gemini,
		Events:     publisher,
	})
	learningHandler := handler.NewLearningHandler(config.Validator, config.Log, learningUsecase)

	route.Setup(&route.RouteConfig{
		Api:             config.Api,
		Middleware:      mid,
		LearningHandler: learningHandler,
	})

	refresher := job.NewSnapshotRefresher(job.SnapshotRefresherConfig{
		DB:       config.DB,
		Log:      config.Log,
		Config:   config.Config,
		Learning: learningRepo,
		Engine:   learningUsecase,
	})
	refresher.Start()

	return refresher
}
