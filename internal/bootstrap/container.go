package bootstrap

import (
	"log"
	"time"

	"rfx-retrieval-be/internal/config"
	"rfx-retrieval-be/internal/controller"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/internal/service"
	"rfx-retrieval-be/pkg/chunker"
	"rfx-retrieval-be/pkg/embedding"
	pktNats "rfx-retrieval-be/pkg/nats"
	"rfx-retrieval-be/pkg/research"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController  controller.IDocumentController
	SearchController    controller.ISearchController
	KnowledgeController controller.IKnowledgeController
	ResearchController  controller.IResearchController

	// Background Services (Exposed for main.go to run)
	VectorizerService service.IVectorizerService
	ResearchService   service.IResearchService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding Provider
	embedTimeout := time.Duration(cfg.Embedding.RequestTimeout) * time.Second
	var embeddingProvider embedding.Provider
	if cfg.Embedding.Provider == "ollama" {
		ollama := embedding.NewOllamaProvider(
			cfg.Embedding.OllamaBaseURL,
			cfg.Embedding.OllamaModel,
			cfg.Embedding.Dimension,
			embedTimeout,
		)
		// Availability is probed once on first use; a dead Ollama
		// degrades retrieval to keyword ranking instead of failing.
		embeddingProvider = embedding.NewLazy(ollama, 5*time.Second)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s, dim %d)", cfg.Embedding.OllamaModel, cfg.Embedding.Dimension)
	} else {
		embeddingProvider = embedding.Disabled(cfg.Embedding.OllamaModel, cfg.Embedding.Dimension)
		log.Printf("[INFO] Embedding disabled, retrieval runs keyword-only")
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	splitter, err := chunker.New(cfg.Chunking.WindowWords, cfg.Chunking.OverlapWords)
	if err != nil {
		log.Printf("[WARN] Invalid chunking config (%v), using defaults", err)
		splitter = chunker.NewDefault()
	}

	researchTimeout := time.Duration(cfg.Research.RequestTimeout) * time.Second
	backends := map[string]research.Backend{
		service.CategoryWeb:           research.NewWebBackend(cfg.Research.WebSearchURL, researchTimeout),
		service.CategoryOpportunities: research.NewSamGovBackend(cfg.Research.SamGovURL, researchTimeout),
		service.CategorySpending:      research.NewUSASpendingBackend(cfg.Research.USASpendingURL, researchTimeout),
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.VectorizeTopic, pubSub)
	vectorizerService := service.NewVectorizerService(
		pubSub,
		cfg.App.VectorizeTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		splitter,
		natsPub,
		sysLogger,
	)
	searchService := service.NewSearchService(
		uowFactory,
		embeddingProvider,
		cfg.Retrieval.TopK,
		cfg.Retrieval.MinScore,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, vectorizerService, sysLogger)
	researchService := service.NewResearchService(
		uowFactory,
		backends,
		time.Duration(cfg.Research.CacheTTLHours)*time.Hour,
		cfg.Research.MaxResultsPerQ,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		DocumentController:  controller.NewDocumentController(documentService),
		SearchController:    controller.NewSearchController(searchService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		ResearchController:  controller.NewResearchController(researchService),
		VectorizerService:   vectorizerService,
		ResearchService:     researchService,
		Logger:              sysLogger,
	}
}
