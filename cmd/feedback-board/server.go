package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackzarifa/feedback-board/internal/auth"
	"github.com/blackzarifa/feedback-board/internal/db"
	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/blackzarifa/feedback-board/internal/routes"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

type FeedbackServer struct {
	models.EnvConfig
	addr       string
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
	database   *db.SharedDB
}

func (server *FeedbackServer) setupLogger() {
	var writer io.Writer
	if server.Debug {
		writer = zerolog.ConsoleWriter{Out: os.Stdout}
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		writer = os.Stdout
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	server.logger = zerolog.New(writer).With().Timestamp().Logger()
}
func (server *FeedbackServer) setupDB(ctx context.Context) error {
	if err := db.MigrateUp(server.DatabaseURL); err != nil {
		return err
	}
	sdb, err := db.Connect(ctx, &server.EnvConfig)
	if err != nil {
		return err
	}
	server.database = sdb
	return nil
}
func (server *FeedbackServer) setupRouter() {
	issuer := auth.NewIssuer(server.JWTSecret, server.JWTTTL)
	server.router = routes.NewRouter(&server.EnvConfig, server.database, issuer, server.logger)
}
func (server *FeedbackServer) setupHttpServer() {
	server.addr = fmt.Sprintf(":%s", server.Port)
	server.httpServer = &http.Server{
		Addr:              server.addr,
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       1 * time.Minute,
		WriteTimeout:      1 * time.Minute,
	}
}
func (server *FeedbackServer) Setup(ctx context.Context) error {
	server.setupLogger()
	if err := server.setupDB(ctx); err != nil {
		server.logger.Error().Err(err).Msg("Setting up database")
		return err
	}
	server.setupRouter()
	server.setupHttpServer()
	return nil
}
func (server *FeedbackServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		server.logger.Error().
			Err(err).
			Msg("Error shutting down")
	}
	server.database.Close()
}
func (server *FeedbackServer) Run() error {
	server.logger.Info().Str("server_address", server.addr).Msg("Server is starting")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- server.httpServer.ListenAndServe()
	}()
	server.logger.Info().Msg("Ready")

	select {
	case err := <-errs:
		server.database.Close()
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	stop() // Stop listening for signals
	server.logger.Info().Msg("Shutting down gracefully")
	server.Shutdown()
	return nil
}
