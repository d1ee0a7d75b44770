package main

import (
	"context"
	"fmt"
	"time"

	"statistik/internal/amqp"
	"statistik/internal/backend"
	"statistik/internal/catalog"
	"statistik/internal/cli"
	"statistik/internal/config"
	"statistik/internal/log"
	"statistik/internal/services"
)

// app carries what every subcommand needs after start-up.
type app struct {
	catalogPath string
	backendType string

	cfg      *config.Config
	logger   *log.Logger
	catalog  *catalog.Catalog
	location *time.Location
}

func (a *app) init() error {
	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if a.catalogPath != "" {
			c.CatalogFile = a.catalogPath
		}
		if a.backendType != "" {
			c.DataBackend = a.backendType
		}
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cli.SetupLogger(cfg)

	if a.catalog, err = cli.LoadCatalog(cfg.CatalogFile, a.logger); err != nil {
		return err
	}
	if a.location, err = cfg.Location(); err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	return nil
}

func (a *app) openBackend(ctx context.Context) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(a.logger).CreateBackend(ctx, bcfg)
}

func (a *app) newStatsService(b *backend.BackendResult) *services.StatsService {
	return services.NewStatsService(b.Lister, services.Options{
		Catalog:     a.catalog,
		Location:    a.location,
		SnapshotTTL: a.cfg.SnapshotTTL,
		Logger:      a.logger,
	})
}

// openAMQP connects when AMQP_URL is set and returns nil otherwise.
func (a *app) openAMQP() (*amqp.Client, error) {
	if !a.cfg.AMQPEnabled() {
		return nil, nil
	}
	client, err := amqp.NewClient(a.cfg.AMQPURL, a.cfg.AMQPExchange, a.cfg.AMQPQueue, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect AMQP: %w", err)
	}
	return client, nil
}

func (a *app) cleanup(b *backend.BackendResult) {
	if b == nil || b.Cleanup == nil {
		return
	}
	if err := b.Cleanup(); err != nil {
		a.logger.Error("Backend cleanup failed", log.FieldError, err)
	}
}
