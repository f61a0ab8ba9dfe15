package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"intake/internal/config"
	"intake/internal/handler"
	"intake/internal/repository"
	"intake/internal/service"
	"intake/internal/session"
	logx "intake/pkg/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.Init(cfg.Env)
	logx.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("gift intake engine")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Lead store: PostgreSQL when configured, in-memory otherwise
	var leads repository.LeadStore
	if dsn := cfg.GetPostgreSQLDSN(); dsn != "" {
		repo, err := repository.NewPostgresRepository(
			dsn,
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer repo.Close()
		leads = repo
		logx.Info().Msg("connected to PostgreSQL lead store")
	} else {
		leads = repository.NewMemoryRepository()
		logx.Warn().Msg("no database configured, leads are kept in memory")
	}

	// Optional Redis session store
	var sessions *session.Store
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sessions = session.NewStore(client, time.Duration(cfg.Redis.SessionTTL)*time.Minute)
		logx.Info().Str("addr", cfg.Redis.Addr).Msg("session store enabled")
	} else {
		logx.Info().Msg("no Redis configured, turns run stateless")
	}

	// Optional message-generation collaborator
	var generator service.MessageGenerator
	if cfg.OpenAI.Enabled {
		generator = service.NewOpenAIClient(&cfg.OpenAI)
		logx.Info().
			Str("api_base", cfg.OpenAI.APIBase).
			Str("model", cfg.OpenAI.ChatModel).
			Msg("message collaborator enabled")
	} else {
		logx.Info().Msg("no OPENAI_API_KEY set, using deterministic assistant messages")
	}

	// Initialize the engine
	catalog := service.DefaultCatalog()
	matcher := service.NewMatcher(
		catalog,
		cfg.Intake.MaxBundleSuggestions,
		cfg.Intake.BundleMarginFactor,
		cfg.Intake.FastTurnaroundDays,
	)
	orchestrator := service.NewTurnOrchestrator(
		service.NewExtractor(),
		service.NewScorer(),
		service.NewResolver(),
		matcher,
		generator,
		leads,
	)

	// Initialize handlers
	intakeHandler := handler.NewIntakeHandler(orchestrator, sessions)
	bundleHandler := handler.NewBundleHandler(catalog)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "gift-intake-engine",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/intake/turn", intakeHandler.Turn)
		apiV1.GET("/bundles", bundleHandler.List)
		apiV1.GET("/leads/:id", intakeHandler.GetLead)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logx.Info().Str("addr", addr).Msg("starting server")

	go func() {
		if err := router.Run(addr); err != nil {
			logx.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info().Msg("shutting down server")
}
