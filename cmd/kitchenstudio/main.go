package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/api"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/config"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/database"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/monitoring"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/pantry"
	"github.com/DevHeart1/Kitchen-Studio-sub000/internal/recipes"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize metrics
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	// Initialize the inventory store, falling back to the in-memory store
	// when the durable backend is unreachable or unconfigured
	store := initializeStore(cfg)
	manager := pantry.NewManager(store, metrics)

	// Initialize the recipe planner when an LLM is configured
	planner, err := initializePlanner(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM: %v", err)
	}

	// Initialize API server
	pantryAPI := api.NewPantryAPI(manager, planner, jwtSecret(cfg))

	// Start metrics server
	if cfg.Metrics.Enabled {
		mPort := cfg.Metrics.Port
		if *metricsPort != 0 {
			mPort = *metricsPort
		}
		go startMetricsServer(mPort)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: pantryAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func initializeStore(cfg *config.Config) pantry.Store {
	if cfg.Database.DSN == "" {
		log.Println("No database configured, using in-memory store")
		return pantry.NewMemoryStore()
	}

	db, err := database.Open(cfg.Database.Dialect, cfg.Database.DSN)
	if err != nil {
		log.Printf("Database unavailable (%v), falling back to in-memory store", err)
		return pantry.NewMemoryStore()
	}
	return pantry.NewGormStore(db, time.Duration(cfg.PersistTimeout))
}

func initializePlanner(cfg *config.Config) (*recipes.Planner, error) {
	if cfg.LLM.APIKey == "" {
		log.Println("No LLM configured, recipe suggestions disabled")
		return nil, nil
	}

	model := cfg.LLM.Model
	if model == "" {
		model = "gpt-4-turbo-preview"
	}
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(cfg.LLM.APIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return recipes.NewPlanner(llm), nil
}

func jwtSecret(cfg *config.Config) []byte {
	if cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}
	log.Println("No JWT secret configured, using development secret")
	return []byte("kitchen-studio-dev")
}

func startMetricsServer(port int) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
