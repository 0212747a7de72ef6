// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/internal/adapter"
	"github.com/MKhiriev/go-blog-client/internal/apitest"
	"github.com/MKhiriev/go-blog-client/internal/cache"
	"github.com/MKhiriev/go-blog-client/internal/config"
	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/internal/service"
	"github.com/MKhiriev/go-blog-client/internal/session"
	"github.com/MKhiriev/go-blog-client/internal/store"
	"github.com/MKhiriev/go-blog-client/models"
)

type client struct {
	sessions *session.Store
	storage  *store.MemoryStorage
	auth     service.ClientAuthService
	blog     service.ClientBlogService
}

func newClient(t *testing.T, baseURL string) *client {
	t.Helper()

	sessions := session.NewStore()
	storage := store.NewMemoryStorage()

	serverAdapter, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    baseURL + "/api/",
		RequestTimeout: 5 * time.Second,
	}, sessions, logger.Nop())
	require.NoError(t, err)

	return &client{
		sessions: sessions,
		storage:  storage,
		auth:     service.NewClientAuthService(serverAdapter, sessions, storage, logger.Nop()),
		blog:     service.NewClientBlogService(serverAdapter, cache.NewQueryCache(time.Minute, logger.Nop()), logger.Nop()),
	}
}

func TestClientFlow_LoginPersistAndRestore(t *testing.T) {
	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	defer srv.Close()
	api.AddUser("alice", "alice@example.com", "secret1")

	ctx := context.Background()
	c := newClient(t, srv.URL)

	resp, err := c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.Token, c.sessions.Token())

	blob, ok, err := c.storage.Get(ctx, service.StorageKeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(blob), &persisted))
	assert.Equal(t, resp, persisted)

	// a fresh process sharing the same session storage
	restored := session.NewStore()
	auth := service.NewClientAuthService(nil, restored, c.storage, logger.Nop())
	ok, err = auth.RestoreSession(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, c.sessions.Session(), restored.Session())
}

func TestClientFlow_HeadersAndCookies(t *testing.T) {
	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	defer srv.Close()
	api.AddUser("alice", "alice@example.com", "secret1")

	ctx := context.Background()
	c := newClient(t, srv.URL)

	_, err := c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)

	_, err = c.blog.Create(ctx, models.BlogCreateRequest{Title: "t1", Content: "c1"})
	require.NoError(t, err)
	_, err = c.blog.ListAll(ctx)
	require.NoError(t, err)
	_, err = c.blog.ListByUser(ctx, "alice")
	require.NoError(t, err)

	for _, r := range api.Requests() {
		switch r.Path {
		case "auth/login":
			assert.Empty(t, r.Authorization)
		case "posts/all", "posts/user/alice":
			assert.Empty(t, r.Authorization, r.Path)
			assert.NotEmpty(t, r.Cookies[apitest.RefreshCookie], r.Path)
		default:
			assert.Equal(t, "Bearer "+c.sessions.Token(), r.Authorization, r.Path)
			assert.NotEmpty(t, r.Cookies[apitest.RefreshCookie], r.Path)
		}
		assert.NotEmpty(t, r.RequestID, r.Path)
	}
}

func TestClientFlow_MutationsInvalidateListings(t *testing.T) {
	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	defer srv.Close()
	api.AddUser("alice", "alice@example.com", "secret1")
	api.AddPost("alice", "first", "hello")

	ctx := context.Background()
	c := newClient(t, srv.URL)
	_, err := c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)

	posts, err := c.blog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = c.blog.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, api.CountRequests(http.MethodGet, "posts/all"), "second read served from cache")

	created, err := c.blog.Create(ctx, models.BlogCreateRequest{Title: "second", Content: "world"})
	require.NoError(t, err)
	require.NotNil(t, created.Post)

	posts, err = c.blog.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 2, api.CountRequests(http.MethodGet, "posts/all"))

	_, err = c.blog.Delete(ctx, models.NewBlogDeleteRequest(*created.Post))
	require.NoError(t, err)

	requests := api.Requests()
	last := requests[len(requests)-1]
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.JSONEq(t, `{"id":"`+created.Post.ID+`","title":"second"}`, last.Body)

	posts, err = c.blog.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestClientFlow_ServerErrors(t *testing.T) {
	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	defer srv.Close()
	api.AddUser("alice", "alice@example.com", "secret1")
	api.AddUser("bob", "bob@example.com", "secret2")
	post := api.AddPost("bob", "bobs", "post")

	ctx := context.Background()
	c := newClient(t, srv.URL)

	_, err := c.blog.Create(ctx, models.BlogCreateRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.ErrorIs(t, err, service.ErrPostsRequest)

	_, err = c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "wrong"})
	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	apiErr, ok := adapter.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, apitest.ErrInvalidCredentials.Error(), apiErr.Response.Message)

	_, err = c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)

	_, err = c.blog.Update(ctx, models.BlogUpdateRequest{ID: post.ID, Title: "mine", Content: "now"})
	assert.ErrorIs(t, err, adapter.ErrForbidden)

	err = c.auth.Register(ctx, models.RegisterRequest{Username: "bob", Email: "bob2@example.com", Password: "secret3"})
	assert.ErrorIs(t, err, adapter.ErrConflict)
	assert.ErrorIs(t, err, service.ErrRegisterOnServer)
}

func TestClientFlow_Logout(t *testing.T) {
	api := apitest.NewServer(logger.Nop())
	srv := api.Start()
	defer srv.Close()
	api.AddUser("alice", "alice@example.com", "secret1")

	ctx := context.Background()
	c := newClient(t, srv.URL)
	_, err := c.auth.Login(ctx, models.LoginRequest{Identifier: "alice", Secret: "secret1"})
	require.NoError(t, err)

	api.FailNext(http.MethodPost, "auth/logout", http.StatusInternalServerError)
	err = c.auth.Logout(ctx)
	require.ErrorIs(t, err, adapter.ErrInternalServerError)
	assert.True(t, c.auth.Session().Authenticated(), "failed logout keeps the session")

	require.NoError(t, c.auth.Logout(ctx))
	assert.False(t, c.auth.Session().Authenticated())
	_, ok, err := c.storage.Get(ctx, service.StorageKeyIsAuthenticated)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.blog.Create(ctx, models.BlogCreateRequest{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
}
