package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"dochub/application"
	"dochub/domain/contracts"
	"dochub/infrastructure/config"
	"dochub/infrastructure/graphclient"
	"dochub/interfaces/web/handlers"
	"dochub/logging"
	"dochub/platform/events"
	"dochub/platform/metrics"
)

const searchDebounce = 500 * time.Millisecond

func main() {
	// Create app-wide context for graceful shutdown
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)

	// Build dependencies with app context
	deps := buildDependencies(cfg, logger)

	// Startup connectivity probe against the document-graph API
	probeGateway(appCtx, deps.Gateway, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger, deps, appCancel)
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	ListingService   *application.ListingService
	BrowseSession    *application.BrowseSession
	SelectionService *application.SelectionService
	MutationService  *application.MutationService
	EventBus         *events.RefreshEventBus
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	BrowseHandlers    *handlers.BrowseHandlers
	SelectionHandlers *handlers.SelectionHandlers
	MutationHandlers  *handlers.MutationHandlers
	SSEManager        *handlers.SSEManager
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	// Infrastructure
	Gateway contracts.DriveGateway
	Metrics *metrics.GatewayMetrics
	Logger  *logging.Logger

	// Application Layer
	Services *ApplicationServices

	// Presentation Layer
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"graph_base_url", cfg.Graph.BaseURL,
	)

	return logger
}

// buildApplicationServices creates application services with dependency injection.
func buildApplicationServices(gateway contracts.DriveGateway, cfg *config.AppConfig) *ApplicationServices {
	// Create event bus for refresh events
	eventBus := events.NewRefreshEventBus()

	listingService := application.NewListingService(gateway, cfg.Graph.PageSize)
	browseSession := application.NewBrowseSession(listingService, eventBus, searchDebounce)
	selectionService := application.NewSelectionService(gateway, listingService, eventBus, cfg.Graph.CanEditLabels)
	mutationService := application.NewMutationService(gateway, selectionService, browseSession, eventBus)

	return &ApplicationServices{
		ListingService:   listingService,
		BrowseSession:    browseSession,
		SelectionService: selectionService,
		MutationService:  mutationService,
		EventBus:         eventBus,
	}
}

// buildPresentationLayer creates all handlers and wires SSE broadcasting.
func buildPresentationLayer(services *ApplicationServices, gateway contracts.DriveGateway, gatewayMetrics *metrics.GatewayMetrics) *PresentationLayer {
	sseManager := handlers.NewSSEManager(gatewayMetrics)
	sseManager.SubscribeToBus(services.EventBus)

	browseHandlers := handlers.NewBrowseHandlers(services.BrowseSession, services.ListingService)
	selectionHandlers := handlers.NewSelectionHandlers(services.SelectionService, gateway)
	mutationHandlers := handlers.NewMutationHandlers(services.MutationService, services.SelectionService)

	return &PresentationLayer{
		BrowseHandlers:    browseHandlers,
		SelectionHandlers: selectionHandlers,
		MutationHandlers:  mutationHandlers,
		SSEManager:        sseManager,
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(cfg *config.AppConfig, logger *logging.Logger) *Dependencies {
	gatewayMetrics := metrics.NewGatewayMetrics()
	gateway := graphclient.NewClient(cfg.Graph, gatewayMetrics, logger)

	services := buildApplicationServices(gateway, cfg)
	presentation := buildPresentationLayer(services, gateway, gatewayMetrics)

	return &Dependencies{
		Gateway:      gateway,
		Metrics:      gatewayMetrics,
		Logger:       logger,
		Services:     services,
		Presentation: presentation,
	}
}

// probeGateway verifies remote connectivity at startup. A failed probe is
// logged but not fatal; the token may become valid later.
func probeGateway(ctx context.Context, gateway contracts.DriveGateway, logger *logging.Logger) {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	user, err := gateway.Me(probeCtx)
	if err != nil {
		logger.Warn("Gateway connectivity probe failed", "error", err)
		return
	}
	logger.Info("Gateway connected", "user", user.DisplayName, "email", user.Email)
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Main application routes
	setupBrowseRoutes(r, deps)
	setupSelectionRoutes(r, deps)
	setupMutationRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("dochub", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Handle("/metrics", deps.Metrics.Handler())
	r.Get("/events", deps.Presentation.SSEManager.HandleSSEConnection)
}

func setupBrowseRoutes(r *chi.Mux, deps *Dependencies) {
	h := deps.Presentation.BrowseHandlers

	r.Get("/api/listing", h.GetListing)
	r.Post("/api/listing/source/{source}", h.SwitchSource)
	r.Post("/api/listing/folders/{folderID}", h.OpenFolder)
	r.Post("/api/listing/back", h.Back)
	r.Post("/api/listing/crumb/{index}", h.CrumbTo)
	r.Post("/api/listing/sort", h.SetSort)
	r.Post("/api/listing/filter", h.SetFilter)
	r.Post("/api/listing/more", h.LoadMore)
	r.Post("/api/listing/search", h.SearchInput)
	r.Get("/api/folders", h.FolderTiles)
}

func setupSelectionRoutes(r *chi.Mux, deps *Dependencies) {
	h := deps.Presentation.SelectionHandlers

	r.Get("/api/selection", h.GetSelection)
	r.Post("/api/selection/{itemID}", h.Select)
	r.Delete("/api/selection", h.ClearSelection)
	r.Post("/api/selection/facets/{facet}", h.LoadFacet)
	r.Post("/api/selection/classification/edit", h.BeginEdit)
	r.Get("/api/labels", h.LabelCatalog)
}

func setupMutationRoutes(r *chi.Mux, deps *Dependencies) {
	h := deps.Presentation.MutationHandlers

	r.Post("/api/upload", h.Upload)
	r.Post("/api/selection/classification", h.SaveMetadata)
	r.Post("/api/selection/label", h.AssignLabel)
	r.Post("/api/selection/copy", h.CopyToPersonalDrive)
	r.Post("/api/selection/restore", h.RestoreVersion)
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger, deps *Dependencies, appCancel context.CancelFunc) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		// Cancel app-wide context first to signal all services to shutdown
		logger.Info("Cancelling app context...")
		appCancel()

		// Close SSE connections immediately
		logger.Info("Closing SSE connections...")
		deps.Presentation.SSEManager.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
