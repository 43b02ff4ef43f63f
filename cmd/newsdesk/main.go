// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/newsdesk-go/internal/cache"
	"github.com/olegiv/newsdesk-go/internal/config"
	"github.com/olegiv/newsdesk-go/internal/handler"
	"github.com/olegiv/newsdesk-go/internal/logging"
	"github.com/olegiv/newsdesk-go/internal/middleware"
	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/scheduler"
	"github.com/olegiv/newsdesk-go/internal/session"
	"github.com/olegiv/newsdesk-go/internal/store"
	"github.com/olegiv/newsdesk-go/internal/version"
	"github.com/olegiv/newsdesk-go/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "NewsDesk - news publishing admin console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_API_BASE_URL      Publishing backend REST API URL (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_DB_PATH           SQLite database path (default: ./data/newsdesk.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  NEWSDESK_REDIS_URL         Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("newsdesk %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Session manager with SQLite-backed durable sessions
	sessionManager := session.NewManager(db, cfg.IsDevelopment())
	sessions := session.NewStore(sessionManager)
	slog.Info("session manager initialized")

	// Backend API client, with the session store as its token source
	api := newsapi.New(newsapi.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: time.Duration(cfg.APITimeout) * time.Second,
		Tokens:  sessions,
	})
	sessions.BindAPI(api)
	slog.Info("backend API client initialized", "base_url", cfg.APIBaseURL)

	// Cache backend: Redis when configured, in-memory otherwise
	cacheBackend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	defer func() { _ = cacheBackend.Close() }()
	categoryCache := cache.NewCategoryCache(cacheBackend, api, time.Duration(cfg.CacheTTL)*time.Second)
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis")
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Background jobs: category cache refresh, event retention
	sched := scheduler.New(db, categoryCache, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Router and middleware stack
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized")

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	slog.Info("login protection initialized")

	// Handlers
	authHandler := handler.NewAuthHandler(sessions, api, renderer, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(api, renderer, sessions)
	articlesHandler := handler.NewArticlesHandler(api, renderer, sessions, categoryCache)
	categoriesHandler := handler.NewCategoriesHandler(api, renderer, sessions, categoryCache)
	adsHandler := handler.NewAdsHandler(api, renderer, sessions)
	usersHandler := handler.NewUsersHandler(api, renderer, sessions)
	aiHandler := handler.NewAIHandler(api, renderer, sessions)
	timeSaverHandler := handler.NewTimeSaverHandler(api, renderer, sessions)
	analyticsHandler := handler.NewAnalyticsHandler(api, renderer, sessions)
	profileHandler := handler.NewProfileHandler(api, renderer, sessions)
	eventsHandler := handler.NewEventsHandler(db, renderer)
	healthHandler := handler.NewHealthHandler(db, api, cacheBackend)

	// Health check (public, minimal detail)
	r.Get(handler.RouteHealth, healthHandler.Health)

	// Auth routes (public, rate limited)
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Authenticated console routes
	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessions))
		r.Use(middleware.LoadUser(sessions))

		// Every signed-in role
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.AnyRole))
			r.Get(handler.RouteRoot, dashboardHandler.Home)
			r.Get(handler.RouteProfile, profileHandler.Show)
			r.Post(handler.RouteProfile, profileHandler.Update)

			r.Get(handler.RouteArticles, articlesHandler.List)

			// AI/ML and Time Saver reads; writes are gated below.
			r.Get(handler.RouteAIArticles, aiHandler.List)
			r.Get(handler.RouteAITrending, aiHandler.Trending)
			r.Get(handler.RouteAIArticles+handler.RouteParamID, aiHandler.View)
			r.Get(handler.RouteAITimeSavers, timeSaverHandler.List)
		})

		// Content writers: articles and categories
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.ContentWriters))

			r.Get(handler.RouteArticles+handler.RouteSuffixNew, articlesHandler.New)
			r.Post(handler.RouteArticles, articlesHandler.Create)
			r.Get(handler.RouteArticles+handler.RouteSuffixEdit, articlesHandler.Edit)
			r.Post(handler.RouteArticles+handler.RouteParamID, articlesHandler.Update)
			r.Post(handler.RouteArticles+handler.RouteSuffixDelete, articlesHandler.Delete)

			r.Get(handler.RouteCategories, categoriesHandler.List)
			r.Get(handler.RouteCategories+handler.RouteSuffixNew, categoriesHandler.New)
			r.Post(handler.RouteCategories, categoriesHandler.Create)
			r.Get(handler.RouteCategories+handler.RouteSuffixEdit, categoriesHandler.Edit)
			r.Post(handler.RouteCategories+handler.RouteParamID, categoriesHandler.Update)
			r.Post(handler.RouteCategories+handler.RouteSuffixDelete, categoriesHandler.Delete)
		})

		// Approvers: the review queue, ads and analytics
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.Approvers))

			r.Get(handler.RouteArticlesPending, articlesHandler.Pending)
			r.Post(handler.RouteArticles+handler.RouteSuffixApprove, articlesHandler.Approve)
			r.Post(handler.RouteArticles+handler.RouteSuffixReject, articlesHandler.Reject)

			r.Get(handler.RouteAds, adsHandler.List)
			r.Get(handler.RouteAds+handler.RouteSuffixNew, adsHandler.New)
			r.Post(handler.RouteAds, adsHandler.Create)
			r.Get(handler.RouteAds+handler.RouteSuffixEdit, adsHandler.Edit)
			r.Post(handler.RouteAds+handler.RouteParamID, adsHandler.Update)
			r.Post(handler.RouteAds+handler.RouteSuffixDelete, adsHandler.Delete)

			r.Get(handler.RouteAnalytics, analyticsHandler.Show)
		})

		// AI creators: AD_MANAGER and EDITOR write AI content, admins
		// keep read-only access registered above.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(model.AICreators))

			r.Get(handler.RouteAIArticles+handler.RouteSuffixNew, aiHandler.New)
			r.Post(handler.RouteAIArticles, aiHandler.Create)
			r.Post(handler.RouteAIArticles+handler.RouteSuffixDelete, aiHandler.Delete)

			r.Get(handler.RouteAITimeSavers+handler.RouteSuffixNew, timeSaverHandler.New)
			r.Post(handler.RouteAITimeSavers, timeSaverHandler.Create)
			r.Post(handler.RouteAITimeSavers+handler.RouteSuffixDelete, timeSaverHandler.Delete)
		})

		// Admin only: operator accounts and the diagnostics event log
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Get(handler.RouteUsers, usersHandler.List)
			r.Get(handler.RouteUsers+handler.RouteSuffixNew, usersHandler.New)
			r.Post(handler.RouteUsers, usersHandler.Create)
			r.Get(handler.RouteUsers+handler.RouteSuffixEdit, usersHandler.Edit)
			r.Post(handler.RouteUsers+handler.RouteParamID, usersHandler.Update)
			r.Post(handler.RouteUsers+handler.RouteSuffixDelete, usersHandler.Delete)
			r.Post(handler.RouteUsers+handler.RouteSuffixStatus, usersHandler.ToggleActive)

			r.Get(handler.RouteEvents, eventsHandler.List)
		})
	})

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	staticHandler := middleware.StaticCache(86400)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/*", staticHandler)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
