package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/orgware/staffd/internal/audit"
	"github.com/orgware/staffd/internal/config"
	httpserver "github.com/orgware/staffd/internal/http"
	"github.com/orgware/staffd/migrations"
	"github.com/orgware/staffd/pkg/analytics"
	"github.com/orgware/staffd/pkg/auth"
	"github.com/orgware/staffd/pkg/repository"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(repository.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	orgsRepo := repository.NewOrganisationsRepository(db)
	usersRepo := repository.NewUsersRepository(db)
	employeesRepo := repository.NewEmployeesRepository(db)
	teamsRepo := repository.NewTeamsRepository(db)
	membershipsRepo := repository.NewMembershipsRepository(db)
	logsRepo := repository.NewLogsRepository(db)

	// Audit mirror file is opened once and closed at shutdown.
	var mirror io.WriteCloser
	if cfg.AuditLogFile != "" {
		mirror, err = audit.OpenLogFile(cfg.AuditLogFile)
		if err != nil {
			logger.Error("failed to open audit log file", "error", err, "path", cfg.AuditLogFile)
			os.Exit(1)
		}
	}
	recorder := audit.NewRecorder(logger, logsRepo, mirror)
	defer recorder.Close()

	// Initialize services
	tokenService := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	})
	authService := auth.NewService(db, orgsRepo, usersRepo, tokenService)
	analyticsService := analytics.NewService(employeesRepo, teamsRepo)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Logger:       logger,
		DB:           db,
		TokenService: tokenService,
		AuthService:  authService,
		Employees:    employeesRepo,
		Teams:        teamsRepo,
		Memberships:  membershipsRepo,
		Logs:         logsRepo,
		Analytics:    analyticsService,
		Audit:        recorder,
		RateLimit:    cfg.RateLimit,
	})

	addr := fmt.Sprintf("%s:%d", cfg.ServerAddr, cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
