package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/cookbook-backend/internal/api"
	blogsapi "github.com/futig/cookbook-backend/internal/api/blogs"
	datasetsapi "github.com/futig/cookbook-backend/internal/api/datasets"
	explorerapi "github.com/futig/cookbook-backend/internal/api/explorer"
	itinerariesapi "github.com/futig/cookbook-backend/internal/api/itineraries"
	newsapi "github.com/futig/cookbook-backend/internal/api/news"
	portfolioapi "github.com/futig/cookbook-backend/internal/api/portfolio"
	ragapi "github.com/futig/cookbook-backend/internal/api/rag"
	statementsapi "github.com/futig/cookbook-backend/internal/api/statements"
	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/integration/asr"
	"github.com/futig/cookbook-backend/internal/integration/brokerage"
	"github.com/futig/cookbook-backend/internal/integration/geo"
	"github.com/futig/cookbook-backend/internal/integration/llm"
	"github.com/futig/cookbook-backend/internal/integration/mcpgit"
	newsconn "github.com/futig/cookbook-backend/internal/integration/news"
	"github.com/futig/cookbook-backend/internal/integration/websearch"
	"github.com/futig/cookbook-backend/internal/pkg/formatter"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/futig/cookbook-backend/internal/pkg/validator"
	"github.com/futig/cookbook-backend/internal/repository"
	"github.com/futig/cookbook-backend/internal/telegram"
	"github.com/futig/cookbook-backend/internal/usecase/blogger"
	"github.com/futig/cookbook-backend/internal/usecase/datachat"
	"github.com/futig/cookbook-backend/internal/usecase/explorer"
	"github.com/futig/cookbook-backend/internal/usecase/itinerary"
	newsuc "github.com/futig/cookbook-backend/internal/usecase/news"
	"github.com/futig/cookbook-backend/internal/usecase/portfolio"
	raguc "github.com/futig/cookbook-backend/internal/usecase/rag"
	"github.com/futig/cookbook-backend/internal/usecase/statements"
	"go.uber.org/zap"
)

// connectors groups every external integration behind its usecase-side
// interface so mocks and real clients swap as one unit.
type connectors struct {
	llm       raguc.LLMConnector
	asr       raguc.ASRConnector
	news      newsuc.NewsConnector
	search    newsuc.SearchConnector
	geo       itinerary.GeoConnector
	brokerage portfolio.BrokerageConnector
	mcp       explorer.MCPConnector
}

func setupConnectors(cfg *config.Config, logger *zap.Logger) connectors {
	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		return connectors{
			llm:       llm.NewMockConnector(logger),
			asr:       asr.NewMockConnector(logger),
			news:      newsconn.NewMockConnector(logger),
			search:    websearch.NewMockConnector(logger),
			geo:       geo.NewMockConnector(logger),
			brokerage: brokerage.NewMockConnector(logger),
			mcp:       mcpgit.NewMockConnector(logger),
		}
	}

	logger.Info("Using real connectors for external services")
	return connectors{
		llm:       llm.NewConnector(cfg.LLMConnectorCfg, logger),
		asr:       asr.NewConnector(cfg.ASRConnectorCfg, logger),
		news:      newsconn.NewConnector(cfg.NewsConnectorCfg, logger),
		search:    websearch.NewConnector(cfg.SearchConnectorCfg, logger),
		geo:       geo.NewConnector(cfg.GeoConnectorCfg, logger),
		brokerage: brokerage.NewConnector(cfg.BrokerageConnectorCfg, logger),
		mcp:       mcpgit.NewConnector(cfg.MCPCfg, logger),
	}
}

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	docRepo := repository.NewDocumentPostgres(db)
	chunkRepo := repository.NewChunkPostgres(db)
	logger.Info("Repositories initialized")

	// Session registry. Expiry reaps everything a session owns,
	// including its indexed rows.
	store := sessions.NewStore(cfg.SessionCfg, logger)
	store.OnExpired(func(entry sessions.Entry) {
		if entry.App != raguc.App {
			return
		}
		reapCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := docRepo.DeleteBySession(reapCtx, entry.ID); err != nil {
			logger.Warn("failed to reap session documents",
				zap.String("session_id", entry.ID),
				zap.Error(err),
			)
		}
	})

	// Initialize connectors
	conns := setupConnectors(cfg, logger)

	// Initialize validators and formatters
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	formats := formatter.NewFactory()

	// Initialize use cases
	ragUC := raguc.NewUsecase(docRepo, chunkRepo, store, conns.llm, conns.asr, logger)
	statementsUC := statements.NewUsecase(store, conns.llm, logger)
	datachatUC := datachat.NewUsecase(store, conns.llm, logger)
	itineraryUC := itinerary.NewUsecase(store, conns.llm, conns.geo, logger)
	newsUC := newsuc.NewUsecase(store, conns.news, conns.search, conns.llm, logger)
	bloggerUC := blogger.NewUsecase(store, conns.llm, conns.search, logger)
	explorerUC := explorer.NewUsecase(conns.mcp, conns.llm, cfg.MCPCfg, logger)
	portfolioUC := portfolio.NewUsecase(store, conns.brokerage, conns.llm, logger)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := api.Handlers{
		RAG:         ragapi.NewHandler(ragUC, cfg.FileUploadCfg, fileValidator),
		Statements:  statementsapi.NewHandler(statementsUC, cfg.FileUploadCfg, fileValidator, formats),
		Datasets:    datasetsapi.NewHandler(datachatUC, cfg.FileUploadCfg, fileValidator),
		Itineraries: itinerariesapi.NewHandler(itineraryUC, formats),
		News:        newsapi.NewHandler(newsUC, formats),
		Blogs:       blogsapi.NewHandler(bloggerUC, formats),
		Explorer:    explorerapi.NewHandler(explorerUC),
		Portfolio:   portfolioapi.NewHandler(portfolioUC, formats),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the news digest Telegram bot
func BuildTelegramBot() (*telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// The bot only needs the news pipeline, not the vector store.
	store := sessions.NewStore(cfg.SessionCfg, logger)
	conns := setupConnectors(cfg, logger)
	newsUC := newsuc.NewUsecase(store, conns.news, conns.search, conns.llm, logger)
	logger.Info("Use cases initialized")

	bot, err := telegram.NewBot(&cfg.TelegramCfg, newsUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
