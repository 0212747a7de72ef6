// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/internal/apitest"
	"github.com/MKhiriev/go-blog-client/internal/config"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/internal/tui"
	"github.com/MKhiriev/go-blog-client/models"
)

type fakeUI struct {
	run func(ctx context.Context) error
}

func (f fakeUI) Run(ctx context.Context) error { return f.run(ctx) }

func newTestConfig(address string) *config.ClientConfig {
	return &config.ClientConfig{
		Adapter: config.ClientAdapter{HTTPAddress: address, RequestTimeout: 5 * time.Second},
		Storage: config.ClientStorage{Driver: config.DriverMemory},
		Cache:   config.ClientCache{TTL: time.Minute},
		Workers: config.ClientWorkers{ReconnectInterval: time.Hour},
	}
}

func newTestApp(t *testing.T) (*App, *apitest.Server) {
	t.Helper()

	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	t.Cleanup(srv.Close)

	app, err := NewApp(context.Background(), newTestConfig(srv.URL+"/api/"), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })
	return app, api
}

func TestNewApp_InvalidAddress(t *testing.T) {
	_, err := NewApp(context.Background(), newTestConfig(""), models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestNewApp_UnknownStorage(t *testing.T) {
	cfg := newTestConfig("http://localhost:4040/api/")
	cfg.Storage.Driver = "redis"

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop())
	assert.Error(t, err)
}

func TestApp_RunRestoresSession(t *testing.T) {
	app, api := newTestApp(t)
	api.AddUser("alice", "alice@example.com", "secret1")

	ctx := context.Background()
	_, err := app.services.AuthService.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)
	want := app.services.AuthService.Session()

	// a new in-memory session over the same persisted record
	app.services.AuthService.SetCredentials(models.User{}, "")

	app.ui = fakeUI{run: func(context.Context) error {
		assert.Equal(t, want, app.services.AuthService.Session())
		return tui.ErrUserQuit
	}}
	assert.NoError(t, app.Run(ctx))
}

func TestApp_RunIgnoresMalformedSession(t *testing.T) {
	app, _ := newTestApp(t)

	ctx := context.Background()
	require.NoError(t, app.storages.Session.Set(ctx, service.StorageKeyIsAuthenticated, "true"))
	require.NoError(t, app.storages.Session.Set(ctx, service.StorageKeyUser, "{not json"))

	ran := false
	app.ui = fakeUI{run: func(context.Context) error {
		ran = true
		assert.False(t, app.services.AuthService.Session().Authenticated())
		return nil
	}}

	require.NoError(t, app.Run(ctx))
	assert.True(t, ran)
}

func TestApp_RunStopsWorkersWithUI(t *testing.T) {
	app, _ := newTestApp(t)

	boom := errors.New("terminal gone")
	app.ui = fakeUI{run: func(context.Context) error { return boom }}

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the UI stopped")
	}
}
