package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/evergreen-centers/evergreen/modules"
	"github.com/evergreen-centers/evergreen/pkg/application"
	"github.com/evergreen-centers/evergreen/pkg/configuration"
	"github.com/evergreen-centers/evergreen/pkg/eventbus"
	"github.com/evergreen-centers/evergreen/pkg/server"
)

func main() {
	conf := configuration.Use()
	log := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.ConnectionString())
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(log),
		Logger:   log,
	})
	if err := modules.Load(app); err != nil {
		log.WithError(err).Fatal("failed to load modules")
	}
	if err := app.Migrations().Run(ctx); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}

	srv := server.New(server.Options{
		Config: conf,
		Pool:   pool,
		Logger: log,
	})
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
	log.Info("server shut down")
}
