// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-client/internal/logger"
	"github.com/MKhiriev/go-blog-client/models"
)

func serve(t *testing.T, s *Server, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, s *Server, identifier, secret string) string {
	t.Helper()

	rec := serve(t, s, http.MethodPost, "/api/auth/login", `{"identifier":"`+identifier+`","secret":"`+secret+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin(t *testing.T) {
	s := NewServer(logger.Nop())
	s.AddUser("alice", "alice@example.com", "secret1")

	t.Run("by username sets refresh cookie", func(t *testing.T) {
		rec := serve(t, s, http.MethodPost, "/api/auth/login", `{"identifier":"alice","secret":"secret1"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "alice@example.com", resp.Email)
		assert.NotEmpty(t, resp.UserID)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, RefreshCookie, cookies[0].Name)
	})

	t.Run("by email", func(t *testing.T) {
		assert.NotEmpty(t, loginToken(t, s, "alice@example.com", "secret1"))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := serve(t, s, http.MethodPost, "/api/auth/login", `{"identifier":"alice","secret":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.Equal(t, ErrInvalidCredentials.Error(), resp.Message)
	})
}

func TestRegister(t *testing.T) {
	s := NewServer(logger.Nop())

	body := `{"username":"bob","email":"bob@example.com","password":"secret1"}`
	rec := serve(t, s, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(t, s, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, s, http.MethodPost, "/api/auth/register", `{"username":" "}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NotEmpty(t, loginToken(t, s, "bob", "secret1"))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := NewServer(logger.Nop())
	s.AddUser("alice", "alice@example.com", "secret1")

	tests := []struct {
		name   string
		method string
		target string
		token  string
	}{
		{name: "logout without token", method: http.MethodPost, target: "/api/auth/logout"},
		{name: "create without token", method: http.MethodPost, target: "/api/posts/post/create"},
		{name: "update with garbage token", method: http.MethodPut, target: "/api/posts/post/update", token: "garbage"},
		{name: "delete with garbage token", method: http.MethodDelete, target: "/api/posts/post/delete", token: "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, s, tt.method, tt.target, `{}`, tt.token)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestPosts_Lifecycle(t *testing.T) {
	s := NewServer(logger.Nop())
	s.AddUser("alice", "alice@example.com", "secret1")
	s.AddUser("bob", "bob@example.com", "secret2")
	token := loginToken(t, s, "alice", "secret1")

	rec := serve(t, s, http.MethodPost, "/api/posts/post/create", `{"title":"t1","content":"c1"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.BlogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Post)
	assert.Equal(t, "alice", created.Post.Username)

	rec = serve(t, s, http.MethodGet, "/api/posts/user/alice", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed models.BlogListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Posts, 1)

	rec = serve(t, s, http.MethodGet, "/api/posts/user/bob", "", "")
	assert.JSONEq(t, `{"posts":[]}`, rec.Body.String())

	bobToken := loginToken(t, s, "bob", "secret2")
	rec = serve(t, s, http.MethodPut, "/api/posts/post/update",
		`{"id":"`+created.Post.ID+`","title":"x","content":"y"}`, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, s, http.MethodPut, "/api/posts/post/update",
		`{"id":"`+created.Post.ID+`","title":"t2","content":"c2"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t2", s.Posts()[0].Title)

	rec = serve(t, s, http.MethodDelete, "/api/posts/post/delete", `{"id":"missing","title":""}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, s, http.MethodDelete, "/api/posts/post/delete", `{"id":"`+created.Post.ID+`","title":"t2"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.Posts())
}

func TestFailNext_AppliesOnce(t *testing.T) {
	s := NewServer(logger.Nop())
	s.FailNext(http.MethodGet, "posts/all", http.StatusServiceUnavailable)

	rec := serve(t, s, http.MethodGet, "/api/posts/all", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = serve(t, s, http.MethodGet, "/api/posts/all", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.CountRequests(http.MethodGet, "posts/all"))
}

func TestRequestID_EchoedAndRecorded(t *testing.T) {
	s := NewServer(logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/posts/all", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "rid-1", rec.Header().Get("X-Request-ID"))
	requests := s.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "rid-1", requests[0].RequestID)

	rec = serve(t, s, http.MethodGet, "/api/posts/all", "", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusInternalServerError)
	n, err := rw.Write([]byte("ok"))

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, http.StatusTeapot, rw.status)
	assert.Equal(t, 2, rw.size)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
