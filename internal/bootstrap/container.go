package bootstrap

import (
	"context"
	"log"
	"path/filepath"

	"ankibridge-be/internal/config"
	"ankibridge-be/internal/controller"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/internal/repository/file"
	"ankibridge-be/internal/repository/memory"
	"ankibridge-be/internal/service"
	"ankibridge-be/pkg/ankiconnect"
	"ankibridge-be/pkg/cardgen"
	"ankibridge-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const cardEventsTopic = "card-events"

type Container struct {
	// Controllers
	AnkiController        controller.IAnkiController
	CardController        controller.ICardController
	BatchController       controller.IBatchController
	BrowseController      controller.IBrowseController
	InstructionController controller.IInstructionController
	SettingsController    controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Persistent Stores (settings overlay env defaults)
	instructionRepo, err := file.NewInstructionRepository(filepath.Join(cfg.App.DataDir, "model_instructions.json"))
	if err != nil {
		log.Fatalf("[FATAL] Failed to load model instructions: %v", err)
	}

	settingsRepo, err := file.NewSettingsRepository(filepath.Join(cfg.App.DataDir, "anki_config.json"), file.Settings{
		LLMProvider: cfg.LLM.Provider,
		LLMModel:    cfg.LLM.Model,
		AnkiHost:    cfg.Anki.Host,
		AnkiPort:    cfg.Anki.Port,
		DefaultTags: cfg.Cards.DefaultTags,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to load settings: %v", err)
	}
	settings := settingsRepo.Get()

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 4. External Clients
	ankiClient := ankiconnect.NewClient(settings.AnkiHost, settings.AnkiPort)

	model := settings.LLMModel
	if settings.LLMProvider == "custom" && cfg.LLM.CustomModel != "" {
		model = cfg.LLM.CustomModel
	}
	llmProvider, err := factory.NewProvider(context.Background(), factory.Settings{
		Provider:      settings.LLMProvider,
		Model:         model,
		OpenAIKey:     cfg.LLM.OpenAIKey,
		GeminiKey:     cfg.LLM.GeminiKey,
		CustomKey:     cfg.LLM.CustomKey,
		CustomBaseURL: cfg.LLM.CustomBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", settings.LLMProvider, model)

	generator := cardgen.NewGenerator(llmProvider)

	// 5. In-Memory Session Storage
	stagingRepo := memory.NewStagingRepository()
	browseRepo := memory.NewBrowseRepository()

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cardEventsTopic)
	consumerService := service.NewConsumerService(pubSub, cardEventsTopic, sysLogger)

	ankiService := service.NewAnkiService(ankiClient, sysLogger)
	cardService := service.NewCardService(ankiClient, generator, instructionRepo, settingsRepo, publisherService, sysLogger)
	batchService := service.NewBatchService(ankiClient, generator, stagingRepo, instructionRepo, settingsRepo, publisherService, sysLogger)
	browseService := service.NewBrowseService(ankiClient, browseRepo, cfg.Cards.PageSize, sysLogger)
	instructionService := service.NewInstructionService(instructionRepo)
	settingsService := service.NewSettingsService(settingsRepo, sysLogger)

	// 7. Controllers
	return &Container{
		AnkiController:        controller.NewAnkiController(ankiService),
		CardController:        controller.NewCardController(cardService),
		BatchController:       controller.NewBatchController(batchService),
		BrowseController:      controller.NewBrowseController(browseService),
		InstructionController: controller.NewInstructionController(instructionService),
		SettingsController:    controller.NewSettingsController(settingsService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
