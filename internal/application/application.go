package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Dmkdok/meal-planner/internal/api"
	"github.com/Dmkdok/meal-planner/internal/config"
	"github.com/Dmkdok/meal-planner/internal/layout"
	"github.com/Dmkdok/meal-planner/internal/provision"
	"github.com/Dmkdok/meal-planner/internal/storage"
)

const serviceName = "meal-planner"

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage    storage.Storage
	calculator provision.Calculator
	handler    *api.Handler
	router     http.Handler
	logger     *zap.Logger
	server     *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStorage()
	if err := seedStorage(cfg, store, logger); err != nil {
		return nil, fmt.Errorf("failed to seed layouts: %w", err)
	}

	calc := provision.New()
	handler := api.NewHandler(calc, store,
		api.WithLogger(logger),
		api.WithMaxLayoutDays(cfg.MaxLayoutDays),
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithAllowedOrigins(cfg.AllowedOrigins...),
	)

	return &App{
		storage:    store,
		calculator: calc,
		handler:    handler,
		router:     apiRouter,
		logger:     logger,
		server:     NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// seedStorage imports the configured layouts file and, when storage is still
// empty, an empty default layout so the service always has one to edit.
func seedStorage(cfg config.Config, store storage.Storage, logger *zap.Logger) error {
	if cfg.LayoutsFile != "" {
		layouts, err := layout.LoadFile(cfg.LayoutsFile)
		if err != nil {
			return err
		}
		n, err := store.Import(layouts, false)
		if err != nil {
			return fmt.Errorf("import %s: %w", cfg.LayoutsFile, err)
		}
		logger.Info("layouts loaded",
			zap.String("file", cfg.LayoutsFile),
			zap.Int("count", n),
		)
	}

	if !cfg.SeedDefaultLayout {
		return nil
	}
	existing, err := store.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	created, err := store.Create(layout.Default(cfg.DefaultLayoutName))
	if err != nil {
		return err
	}
	logger.Info("default layout created", zap.String("id", created.ID), zap.String("name", created.Name))
	return nil
}

// BuildRootHandler mounts the API under /api/ and answers the root path with a short service index.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"service": serviceName,
			"health":  "/api/health",
			"layouts": "/api/layouts",
		})
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
