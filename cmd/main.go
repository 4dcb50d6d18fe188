package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prepmate/prepmate-server/internal/api/http/router"
	httpServer "github.com/prepmate/prepmate-server/internal/api/http/server"
	"github.com/prepmate/prepmate-server/internal/config"
	"github.com/prepmate/prepmate-server/internal/logger"
	"github.com/prepmate/prepmate-server/internal/repository/postgres"
	"github.com/prepmate/prepmate-server/internal/service"
	"github.com/prepmate/prepmate-server/internal/sweeper"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	progressRepo := postgres.NewProgressRepository(db)

	authService := service.NewAuth(userRepo, logger)
	sessionService := service.NewSession(sessionRepo, logger)
	progressService := service.NewProgress(progressRepo, userRepo, logger)

	r := router.New(authService, sessionService, progressService, db, logger)

	var opts []httpServer.Option
	if cfg.HTTP.EnableHTTPS {
		opts = append(opts, httpServer.WithTLS(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName))
	}
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), opts...)

	sessionSweeper := sweeper.New(sessionService, cfg.Session.SweepInterval, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", srv.Address())
		if err := srv.Start(); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionSweeper.Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
