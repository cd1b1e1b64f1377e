// Package main is the entry point for the LLM Gateway Service.
// @title LLM Gateway Service API
// @version 1.0
// @description Unified completion gateway for OpenAI and Anthropic backends with retry, fallback, cost tracking and Redis-backed conversation contexts
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/synapse-ai/llm-gateway
// @contact.email support@synapse-ai.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/synapse-ai/llm-gateway/docs"
	"github.com/synapse-ai/llm-gateway/internal/api/handlers"
	"github.com/synapse-ai/llm-gateway/internal/api/middleware"
	"github.com/synapse-ai/llm-gateway/internal/api/routes"
	"github.com/synapse-ai/llm-gateway/internal/config"
	"github.com/synapse-ai/llm-gateway/internal/core/cache"
	"github.com/synapse-ai/llm-gateway/internal/core/docdb"
	"github.com/synapse-ai/llm-gateway/internal/core/vault"
	"github.com/synapse-ai/llm-gateway/internal/domain/models"
	rediscache "github.com/synapse-ai/llm-gateway/internal/infrastructure/cache/redis"
	"github.com/synapse-ai/llm-gateway/internal/infrastructure/docdb/mongodb"
	dotenvvault "github.com/synapse-ai/llm-gateway/internal/infrastructure/vault/dotenv"
	"github.com/synapse-ai/llm-gateway/internal/pkg/encryption"
	"github.com/synapse-ai/llm-gateway/internal/services/contextstore"
	"github.com/synapse-ai/llm-gateway/internal/services/gateway"
	"github.com/synapse-ai/llm-gateway/internal/services/providers"
	"github.com/synapse-ai/llm-gateway/internal/services/providers/anthropic"
	"github.com/synapse-ai/llm-gateway/internal/services/providers/openai"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	setupLogger(cfg.Log)

	ctx := context.Background()

	// Initialize vault client using factory pattern
	vaultClient, err := createVaultClient(cfg.Vault)
	if err != nil {
		log.Fatalf("failed to initialize vault client: %v", err)
	}
	defer vaultClient.Close()

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache, cfg.Context.TTL)
	if err != nil {
		log.Fatalf("failed to initialize cache client: %v", err)
	}
	defer cacheClient.Close()

	// Initialize usage archive client when enabled
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatalf("failed to initialize document db client: %v", err)
	}
	if docDBClient != nil {
		defer docDBClient.Close(ctx)

		if err := docDBClient.EnsureIndexes(ctx); err != nil {
			log.Printf("warning: failed to ensure indexes: %v", err)
		}
	}

	// Initialize encryptor
	encryptor, err := createEncryptor(vaultClient)
	if err != nil {
		log.Fatalf("failed to initialize encryptor: %v", err)
	}

	// Initialize context store service
	contextService, err := contextstore.NewService(&contextstore.Config{
		CacheClient: cacheClient,
		Encryptor:   encryptor,
		TTL:         cfg.Context.TTL,
	})
	if err != nil {
		log.Fatalf("failed to initialize context store service: %v", err)
	}

	// Initialize provider adapters
	providerMap, err := createProviders(ctx, cfg, vaultClient)
	if err != nil {
		log.Fatalf("failed to initialize providers: %v", err)
	}

	// Initialize cost tracker
	var costTracker *gateway.CostTracker
	if cfg.Cost.Enabled {
		costTracker = gateway.NewCostTracker(gateway.CostTrackerConfig{
			AlertThreshold: cfg.Cost.AlertThreshold,
			Archive:        docDBClient,
		})
	}

	// Initialize gateway service
	gatewayService, err := gateway.NewService(&gateway.Config{
		Providers:   providerMap,
		CostTracker: costTracker,
	})
	if err != nil {
		log.Fatalf("failed to initialize gateway service: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := setupRouter(cacheClient, docDBClient, gatewayService, contextService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// setupLogger configures the global zerolog logger.
func setupLogger(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// createVaultClient creates a vault client based on the configuration.
func createVaultClient(cfg config.VaultConfig) (vault.Client, error) {
	vaultType := vault.Type(cfg.Type)

	switch vaultType {
	case vault.TypeDotEnv:
		return dotenvvault.NewClient()
	default:
		log.Fatalf("unsupported vault type: %s", cfg.Type)
		return nil, nil
	}
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig, defaultTTL time.Duration) (cache.Client, error) {
	cacheType := cache.Type(cfg.Type)

	switch cacheType {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: defaultTTL,
		})
	default:
		log.Fatalf("unsupported cache type: %s", cfg.Type)
		return nil, nil
	}
}

// createDocDBClient creates the usage archive client. Returns nil when the
// archive is disabled.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	docDBType := docdb.Type(cfg.Type)

	switch docDBType {
	case docdb.TypeMongoDB:
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		log.Fatalf("unsupported docdb type: %s", cfg.Type)
		return nil, nil
	}
}

// createEncryptor creates the context encryptor. Falls back to a NoOp
// encryptor when no key is configured so development setups keep working.
func createEncryptor(vaultClient vault.Client) (encryption.Encryptor, error) {
	key, err := vaultClient.GetSecret(context.Background(), "dotenv://CONTEXT_ENCRYPTION_KEY")
	if err != nil || key == "" {
		log.Println("warning: CONTEXT_ENCRYPTION_KEY not set, using NoOp encryptor")
		return encryption.NewNoOpEncryptor(), nil
	}

	return encryption.NewAESEncryptor(key)
}

// createProviders builds the adapter for each backend whose API key resolves
// through the vault. At least one backend must be configured.
func createProviders(ctx context.Context, cfg *config.Config, vaultClient vault.Client) (map[models.Provider]providers.Provider, error) {
	providerMap := make(map[models.Provider]providers.Provider)

	if key, err := vaultClient.GetSecret(ctx, "dotenv://OPENAI_API_KEY"); err == nil && key != "" {
		client, err := openai.NewClient(openai.Config{
			APIKey:      key,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Timeout:     cfg.OpenAI.Timeout,
		})
		if err != nil {
			return nil, err
		}
		providerMap[models.ProviderOpenAI] = client
	} else {
		log.Println("warning: OPENAI_API_KEY not set, openai backend disabled")
	}

	if key, err := vaultClient.GetSecret(ctx, "dotenv://ANTHROPIC_API_KEY"); err == nil && key != "" {
		client, err := anthropic.NewClient(anthropic.Config{
			APIKey:    key,
			BaseURL:   cfg.Anthropic.BaseURL,
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			Timeout:   cfg.Anthropic.Timeout,
		})
		if err != nil {
			return nil, err
		}
		providerMap[models.ProviderAnthropic] = client
	} else {
		log.Println("warning: ANTHROPIC_API_KEY not set, anthropic backend disabled")
	}

	return providerMap, nil
}

// setupRouter creates and configures the Gin router.
func setupRouter(cacheClient cache.Client, docDBClient docdb.Client, gatewayService gateway.Service, contextService contextstore.Service) *gin.Engine {
	router := gin.New()

	// Create middleware
	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()
	router.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))

	// Create handlers
	healthHandler := handlers.NewHealthHandler(cacheClient, docDBClient)
	completionsHandler := handlers.NewCompletionsHandler(gatewayService)
	contextsHandler := handlers.NewContextsHandler(contextService)

	// Setup routes
	routesCfg := &routes.Config{
		HealthHandler:      healthHandler,
		CompletionsHandler: completionsHandler,
		ContextsHandler:    contextsHandler,
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
