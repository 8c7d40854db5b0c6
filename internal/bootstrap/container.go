package bootstrap

import (
	"log"
	"os"

	"second-brain-be/internal/config"
	"second-brain-be/internal/controller"
	"second-brain-be/internal/pkg/logger"
	"second-brain-be/internal/repository/memory"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/internal/service"
	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/embedding"
	"second-brain-be/pkg/llm/factory"
	"second-brain-be/pkg/pipeline"
	"second-brain-be/pkg/pipeline/archive"
	"second-brain-be/pkg/pipeline/classify"
	"second-brain-be/pkg/pipeline/normalize"
	"second-brain-be/pkg/pipeline/publish"
	"second-brain-be/pkg/pipeline/recall"
	"second-brain-be/pkg/pipeline/synthesize"
	"second-brain-be/pkg/pipeline/validate"

	pktNats "second-brain-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PipelineController  controller.IPipelineController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for graceful shutdown
	NatsPublisher *pktNats.Publisher
	SysLogger     logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	pipelineLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	sessionRepo := memory.NewSessionRepository()
	checkpoints := pipeline.NewDurableCheckpointStore(uowFactory, sessionRepo)
	docs := docstore.NewGormStore(uowFactory)

	// 5. Pipeline Stages
	archiver := archive.NewArchiver(embeddingProvider, uowFactory, pipelineLogger)
	orchestrator := pipeline.NewOrchestrator(
		normalize.NewNormalizer(pipelineLogger),
		classify.NewClassifier(llmProvider, pipelineLogger),
		recall.NewRecaller(embeddingProvider, uowFactory, cfg.Recall, pipelineLogger),
		synthesize.NewSynthesizer(llmProvider, pipelineLogger),
		validate.NewValidator(pipelineLogger),
		publish.NewPublisher(docs, pipelineLogger),
		archiver,
		docs,
		checkpoints,
		pipelineLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Topics.ReindexDocument, archiver)
	ingestionService := service.NewIngestionService(
		orchestrator,
		checkpoints,
		publisherService,
		cfg.Topics.ReindexDocument,
		natsPub,
		sysLogger,
	)

	knowledgeService := service.NewKnowledgeService(uowFactory)

	// 7. Controllers
	pipelineController := controller.NewPipelineController(ingestionService)
	knowledgeController := controller.NewKnowledgeController(knowledgeService)

	return &Container{
		PipelineController:  pipelineController,
		KnowledgeController: knowledgeController,
		ConsumerService:     consumerService,
		NatsPublisher:       natsPub,
		SysLogger:           sysLogger,
	}
}
