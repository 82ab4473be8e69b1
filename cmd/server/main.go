package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plankt0n/streamplay-api/internal/config"
	"github.com/plankt0n/streamplay-api/internal/lib/jwt"
	"github.com/plankt0n/streamplay-api/internal/logger"
	"github.com/plankt0n/streamplay-api/internal/server"
	"github.com/plankt0n/streamplay-api/internal/services/auth"
	"github.com/plankt0n/streamplay-api/internal/services/user"
	"github.com/plankt0n/streamplay-api/internal/storage/sqlstore"
	"github.com/plankt0n/streamplay-api/pkg/sqldb"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runner, ctx := errgroup.WithContext(ctx)

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err, "Load config")
	}

	loggerSvc, err := logger.Initialize(cfg.Logger)
	if err != nil {
		log.Fatal(err, "Init logger")
	}
	ctx = loggerSvc.Zerolog().WithContext(ctx)
	zl := loggerSvc.Zerolog()

	jwtCfg, err := jwt.NewConfig()
	if err != nil {
		zl.Fatal().Err(err).Msg("Load jwt config")
	}
	tokens, err := jwt.NewManager(jwtCfg)
	if err != nil {
		zl.Fatal().Err(err).Msg("Init jwt")
	}

	db, err := sqldb.New(ctx, cfg.DB)
	if err != nil {
		zl.Fatal().Err(err).Msg("Init db")
	}
	if err := db.Start(ctx, runner); err != nil {
		zl.Fatal().Err(err).Msg("Start db")
	}

	storage := sqlstore.NewStorage(ctx, db)
	if err := storage.ApplyMigrations(); err != nil {
		zl.Fatal().Err(err).Msg("Apply migrations")
	}

	authSvc := auth.New(storage, tokens, auth.AdminCredentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	})
	userSvc := user.New(storage)

	httpSrv := server.NewServer(cfg.ServerAddress, tokens, authSvc, userSvc)
	httpSrv.Run(ctx, runner)

	runner.Go(func() error {
		<-ctx.Done()

		if err := httpSrv.Shutdown(ctx); err != nil {
			zl.Error().Err(err).Msg("Shutdown http")
		}
		if err := db.Shutdown(ctx); err != nil {
			zl.Error().Err(err).Msg("Shutdown db")
			return err
		}
		return nil
	})

	if err := runner.Wait(); err != nil {
		zl.Error().Err(err).Msg("Server stopped")
	}
}
