// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/session"
	"github.com/MKhiriev/go-blog-client/internal/store"
	"github.com/MKhiriev/go-blog-client/models"
)

// Session storage keys.
const (
	StorageKeyIsAuthenticated = "isAuthenticated"
	StorageKeyUser            = "user"

	isAuthenticatedValue = "true"
)

type clientAuthService struct {
	adapter  adapter.AuthAdapter
	sessions *session.Store
	storage  store.KeyValueStorage

	logger *logger.Logger
}

func NewClientAuthService(serverAdapter adapter.AuthAdapter, sessions *session.Store, storage store.KeyValueStorage, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{
		adapter:  serverAdapter,
		sessions: sessions,
		storage:  storage,
		logger:   logger,
	}
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return models.LoginResponse{}, err
	}

	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}
	if resp.Token == "" {
		return models.LoginResponse{}, ErrInvalidLoginResponse
	}

	a.sessions.SetCredentials(resp.User(), resp.Token)

	if err = a.persist(ctx, resp); err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("failed to persist session")
		return resp, fmt.Errorf("%w: %w", ErrSessionNotPersisted, err)
	}

	a.logger.Debug().Str("func", "clientAuthService.Login").Str("user_id", resp.UserID).Msg("session established")
	return resp, nil
}

func (a *clientAuthService) persist(ctx context.Context, resp models.LoginResponse) error {
	blob, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = a.storage.Set(ctx, StorageKeyIsAuthenticated, isAuthenticatedValue); err != nil {
		return fmt.Errorf("store %s: %w", StorageKeyIsAuthenticated, err)
	}
	if err = a.storage.Set(ctx, StorageKeyUser, string(blob)); err != nil {
		return fmt.Errorf("store %s: %w", StorageKeyUser, err)
	}
	return nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.adapter.Logout(ctx); err != nil {
		// the session stays signed in when the server did not confirm
		return fmt.Errorf("%w: %w", ErrLogoutOnServer, err)
	}

	a.sessions.Clear()

	removeErr := errors.Join(
		a.storage.Remove(ctx, StorageKeyIsAuthenticated),
		a.storage.Remove(ctx, StorageKeyUser),
	)
	if removeErr != nil {
		a.logger.Err(removeErr).Str("func", "clientAuthService.Logout").Msg("failed to remove persisted session")
		return fmt.Errorf("remove persisted session: %w", removeErr)
	}

	a.logger.Debug().Str("func", "clientAuthService.Logout").Msg("session cleared")
	return nil
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	if err := a.adapter.Register(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	return nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (bool, error) {
	flag, ok, err := a.storage.Get(ctx, StorageKeyIsAuthenticated)
	if err != nil {
		return false, a.readError(StorageKeyIsAuthenticated, err)
	}
	if !ok || flag != isAuthenticatedValue {
		return false, nil
	}

	blob, ok, err := a.storage.Get(ctx, StorageKeyUser)
	if err != nil {
		return false, a.readError(StorageKeyUser, err)
	}
	if !ok {
		return false, nil
	}

	var resp models.LoginResponse
	if err = json.Unmarshal([]byte(blob), &resp); err != nil {
		a.logger.Warn().Err(err).Str("func", "clientAuthService.RestoreSession").Msg("persisted user is not valid JSON")
		return false, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	// A user without a token is rejected on purpose: restoring it would set
	// the user and leave the token empty.
	if resp.Token == "" {
		return false, fmt.Errorf("%w: no token", ErrMalformedSession)
	}

	a.sessions.SetCredentials(resp.User(), resp.Token)
	a.logger.Debug().Str("func", "clientAuthService.RestoreSession").Str("user_id", resp.UserID).Msg("session restored")
	return true, nil
}

// readError reports a value that cannot be decrypted as a malformed session.
func (a *clientAuthService) readError(key string, err error) error {
	if errors.Is(err, store.ErrUndecryptableValue) {
		a.logger.Warn().Err(err).Str("func", "clientAuthService.RestoreSession").Str("key", key).Msg("persisted value cannot be decrypted")
		return fmt.Errorf("%w: %w", ErrMalformedSession, err)
	}
	return fmt.Errorf("read %s: %w", key, err)
}

func (a *clientAuthService) SetCredentials(user models.User, token string) {
	a.sessions.SetCredentials(user, token)
}

func (a *clientAuthService) Session() models.Session {
	return a.sessions.Session()
}
