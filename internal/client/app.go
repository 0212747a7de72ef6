// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/cache"
	"github.com/MKhiriev/go-blog-client/internal/config"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/internal/session"
	"github.com/MKhiriev/go-blog-client/internal/store"
	"github.com/MKhiriev/go-blog-client/internal/tui"
	"github.com/MKhiriev/go-blog-client/internal/workers"
	"github.com/MKhiriev/go-blog-client/models"
)

type ui interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	ui       ui
	workers  *workers.Workers

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp builds the whole client from cfg: session storage, session store,
// HTTP adapter, query cache, services, reconnect watcher and UI.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create session storage: %w", err)
	}

	sessions := session.NewStore()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, sessions, log)
	if err != nil {
		_ = storages.Close(ctx)
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	queryCache := cache.NewQueryCache(cfg.Cache.TTL, log)
	services := service.NewClientServices(serverAdapter, sessions, storages, queryCache, log)

	view, err := tui.New(services, buildInfo, log)
	if err != nil {
		_ = storages.Close(ctx)
		return nil, fmt.Errorf("create ui: %w", err)
	}

	watcher := workers.NewReconnectWatcher(serverAdapter, cfg.Workers.ReconnectInterval, services.BlogService.Invalidate, log)

	return &App{
		services: services,
		storages: storages,
		ui:       view,
		workers:  workers.NewWorkers(watcher),
		logger:   log,
	}, nil
}

// Run restores a persisted session, starts the background workers and
// blocks in the UI. Leaving the UI stops the workers.
func (a *App) Run(ctx context.Context) error {
	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan error, 1)
	go func() {
		workersDone <- a.workers.Run(ctx)
	}()

	err := a.ui.Run(ctx)
	cancel()

	if workersErr := <-workersDone; workersErr != nil {
		a.logger.Err(workersErr).Str("func", "App.Run").Msg("worker stopped with error")
	}

	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

// restoreSession loads the persisted session, if any. A malformed record is
// logged and ignored: the user starts signed out.
func (a *App) restoreSession(ctx context.Context) error {
	restored, err := a.services.AuthService.RestoreSession(ctx)
	switch {
	case errors.Is(err, service.ErrMalformedSession):
		a.logger.Warn().Err(err).Str("func", "App.restoreSession").Msg("ignoring malformed persisted session")
		return nil
	case err != nil:
		return fmt.Errorf("restore session: %w", err)
	}

	a.logger.Info().Bool("restored", restored).Str("func", "App.restoreSession").Msg("session restore finished")
	return nil
}

func (a *App) Close(ctx context.Context) error {
	return a.storages.Close(ctx)
}
