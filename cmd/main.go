package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openbracket/tournament-api/auth"
	"github.com/openbracket/tournament-api/config"
	"github.com/openbracket/tournament-api/db"
	"github.com/openbracket/tournament-api/handlers"
	"github.com/openbracket/tournament-api/middleware"
	"github.com/openbracket/tournament-api/repositories"
	"github.com/openbracket/tournament-api/routes"
	"github.com/openbracket/tournament-api/services"
	"github.com/openbracket/tournament-api/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DatabaseURL, 10*time.Second)
	if err != nil {
		slog.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			slog.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("object storage configured", slog.String("bucket", cfg.R2BucketName))
	} else {
		slog.Warn("object storage not configured, avatar uploads disabled")
	}

	userRepo := repositories.NewPostgresUserRepository(database)
	tournamentRepo := repositories.NewPostgresTournamentRepository(database)
	participantRepo := repositories.NewPostgresParticipantRepository(database)
	matchRepo := repositories.NewPostgresMatchRepository(database)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, participantRepo)
	participantService := services.NewParticipantService(participantRepo, tournamentRepo)
	matchService := services.NewMatchService(matchRepo, tournamentRepo, participantRepo)
	statsService := services.NewStatsService(userRepo, tournamentRepo, matchRepo)

	tokenCodec := auth.NewTokenCodec(cfg.JWTSecretKey, cfg.TokenTTL)
	sessionResolver := middleware.NewSessionResolver(tokenCodec, userRepo)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService, tokenCodec),
		User:        handlers.NewUserHandler(userService),
		Tournament:  handlers.NewTournamentHandler(tournamentService),
		Participant: handlers.NewParticipantHandler(participantService),
		Match:       handlers.NewMatchHandler(matchService),
		Stats:       handlers.NewStatsHandler(statsService),
	}, sessionResolver, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		slog.Info("shutting down server", slog.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	slog.Info("starting server", slog.Int("port", cfg.ServerPort))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("server stopped")
}
