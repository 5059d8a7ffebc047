package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"noticiario/internal/config"
	"noticiario/internal/db"
	"noticiario/internal/handlers"
	"noticiario/internal/logging"
	"noticiario/internal/middleware"
	"noticiario/internal/router"
	"noticiario/internal/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	gin.SetMode(cfg.Server.Mode)

	if cfg.Auth.JWTKey == "" {
		logger.Warn("JWT_KEY not set, login will fail until it is configured")
	}

	// deferred first so it runs after db.Close
	exitCode := 0
	defer func() {
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	}()

	// Initialize Database
	conn, err := db.Open(cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Services
	mailer := services.NewMailService(cfg.Mail, logger)
	tokens := services.NewTokenService(cfg.Auth.JWTKey, cfg.Auth.TokenTTL)
	clientService := services.NewClientService(conn, tokens)
	categoryService := services.NewCategoryService(conn)
	moderationService := services.NewModerationService(conn, mailer)
	interactionService := services.NewInteractionService(conn, mailer)
	dashboardService := services.NewDashboardService(conn)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.LoadClient(tokens, clientService))

	router.RegisterRoutes(r, router.Handlers{
		Clients:      handlers.NewClientHandler(clientService, logger),
		Categories:   handlers.NewCategoryHandler(categoryService, logger),
		Articles:     handlers.NewArticleHandler(moderationService, logger),
		Interactions: handlers.NewInteractionHandler(interactionService, logger),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, logger),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, quit, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Error("server stopped", "error", err)
		exitCode = 1
	}
}
