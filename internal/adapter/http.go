// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-blog-client/internal/config"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/utils"
	"github.com/MKhiriev/go-blog-client/models"
)

const headerRequestID = "X-Request-ID"

// HTTPServerAdapter is the resty implementation of [ServerAdapter].
type HTTPServerAdapter struct {
	client *utils.HTTPClient
	tokens TokenSource
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout. tokens is consulted on every
// request; it is typically the application's *session.Store.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, tokens TokenSource, logger *logger.Logger) (*HTTPServerAdapter, error) {
	baseURL, err := config.NormalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &HTTPServerAdapter{
		client: client,
		tokens: tokens,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

// Login implements [AuthAdapter].
func (h *HTTPServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	resp, err := h.request(ctx, pathLogin).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(pathLogin)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logFailure("HTTPServerAdapter.Login", err)
		return models.LoginResponse{}, err
	}

	var loginResp models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &loginResp); err != nil {
		return models.LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	h.logger.Debug().Str("func", "HTTPServerAdapter.Login").Str("user_id", loginResp.UserID).Msg("logged in")
	return loginResp, nil
}

// Logout implements [AuthAdapter].
func (h *HTTPServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.request(ctx, pathLogout).Post(pathLogout)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logFailure("HTTPServerAdapter.Logout", err)
		return err
	}

	return nil
}

// Register implements [AuthAdapter].
func (h *HTTPServerAdapter) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.request(ctx, pathRegister).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(pathRegister)
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logFailure("HTTPServerAdapter.Register", err)
		return err
	}

	return nil
}

// ListAll implements [BlogAdapter].
func (h *HTTPServerAdapter) ListAll(ctx context.Context) ([]models.BlogModel, error) {
	resp, err := h.request(ctx, pathPostsAll).Get(pathPostsAll)
	if err != nil {
		return nil, fmt.Errorf("list all posts request: %w", err)
	}

	return h.decodePosts("HTTPServerAdapter.ListAll", resp)
}

// ListByUser implements [BlogAdapter]. username is path-escaped.
func (h *HTTPServerAdapter) ListByUser(ctx context.Context, username string) ([]models.BlogModel, error) {
	resp, err := h.request(ctx, pathPostsByUser).
		SetPathParam("username", username).
		Get(pathPostsByUser)
	if err != nil {
		return nil, fmt.Errorf("list user posts request: %w", err)
	}

	return h.decodePosts("HTTPServerAdapter.ListByUser", resp)
}

// Create implements [BlogAdapter].
func (h *HTTPServerAdapter) Create(ctx context.Context, req models.BlogCreateRequest) (models.BlogResponse, error) {
	resp, err := h.request(ctx, pathPostCreate).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(pathPostCreate)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("create post request: %w", err)
	}

	return h.decodeBlogResponse("HTTPServerAdapter.Create", resp)
}

// Update implements [BlogAdapter].
func (h *HTTPServerAdapter) Update(ctx context.Context, req models.BlogUpdateRequest) (models.BlogResponse, error) {
	resp, err := h.request(ctx, pathPostUpdate).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put(pathPostUpdate)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("update post request: %w", err)
	}

	return h.decodeBlogResponse("HTTPServerAdapter.Update", resp)
}

// Delete implements [BlogAdapter]. The body is exactly {id, title}.
func (h *HTTPServerAdapter) Delete(ctx context.Context, req models.BlogDeleteRequest) (models.BlogResponse, error) {
	resp, err := h.request(ctx, pathPostDelete).
		SetHeader("Content-Type", "application/json").
		SetBody(req.Payload()).
		Delete(pathPostDelete)
	if err != nil {
		return models.BlogResponse{}, fmt.Errorf("delete post request: %w", err)
	}

	return h.decodeBlogResponse("HTTPServerAdapter.Delete", resp)
}

// Ping implements [HealthChecker] with a HEAD request to posts/all.
func (h *HTTPServerAdapter) Ping(ctx context.Context) error {
	if _, err := h.request(ctx, pathPostsAll).Head(pathPostsAll); err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	return nil
}

// request starts a request for path with a request id and, unless path is
// public, the current bearer token.
func (h *HTTPServerAdapter) request(ctx context.Context, path string) *resty.Request {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestID)

	if PublicEndpoint(path) || h.tokens == nil {
		return req
	}
	if token := h.tokens.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (h *HTTPServerAdapter) decodePosts(fn string, resp *resty.Response) ([]models.BlogModel, error) {
	if err := mapHTTPError(resp); err != nil {
		h.logFailure(fn, err)
		return nil, err
	}

	var list models.BlogListResponse
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("decode posts response: %w", err)
	}

	h.logger.Debug().Str("func", fn).Int("posts", len(list.Posts)).Msg("posts received")
	return list.Posts, nil
}

// decodeBlogResponse tolerates an empty success body.
func (h *HTTPServerAdapter) decodeBlogResponse(fn string, resp *resty.Response) (models.BlogResponse, error) {
	if err := mapHTTPError(resp); err != nil {
		h.logFailure(fn, err)
		return models.BlogResponse{}, err
	}

	var blogResp models.BlogResponse
	if len(resp.Body()) == 0 {
		return blogResp, nil
	}
	if err := json.Unmarshal(resp.Body(), &blogResp); err != nil {
		return models.BlogResponse{}, fmt.Errorf("decode post response: %w", err)
	}

	return blogResp, nil
}

func (h *HTTPServerAdapter) logFailure(fn string, err error) {
	h.logger.Err(err).Str("func", fn).Msg("request failed")
}
